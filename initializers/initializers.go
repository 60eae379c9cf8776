package initializers

import (
	"context"

	"access-request-backend/config"
	"access-request-backend/fiberlog"
	authhandler "access-request-backend/lib/auth"
	"access-request-backend/lib/directory"
	appsystemprovider "access-request-backend/lib/dicts/app-system"
	employeeprovider "access-request-backend/lib/dicts/employee"
	formtemplateprovider "access-request-backend/lib/dicts/form-template"
	xlsexport "access-request-backend/lib/export/xls"
	filestorage "access-request-backend/lib/file-storage"
	notifyhandler "access-request-backend/lib/notify"
	pdfhandler "access-request-backend/lib/pdf"
	"access-request-backend/lib/reminder"
	requesthandler "access-request-backend/lib/request"
	usershandler "access-request-backend/lib/users"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	InitDirectory()
	filestorage.Instance = filestorage.NewHandler(*config.Conf.S3.Enabled)
	employeeprovider.Instance = employeeprovider.NewHandler()
	appsystemprovider.Instance = appsystemprovider.NewHandler()
	formtemplateprovider.Instance = formtemplateprovider.NewHandler()
	usershandler.Instance = usershandler.NewHandler()
	authhandler.Instance = authhandler.NewHandler()
	notifyhandler.Instance = notifyhandler.NewHandler()
	pdfhandler.Instance = pdfhandler.NewHandler(config.Conf.Pdf.FontDir, config.Conf.Pdf.OutputDir)
	requesthandler.Instance = requesthandler.NewHandler()
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

func InitDirectory() {
	settings := directory.Settings{
		Enabled:         *config.Conf.Directory.Enabled,
		Addr:            config.Conf.Directory.Addr,
		BaseDN:          config.Conf.Directory.BaseDN,
		BindUser:        config.Conf.Directory.BindUser,
		BindPassword:    config.Conf.Directory.BindPassword,
		ManagementGroup: config.Conf.Directory.ManagementGroup,
	}
	// карточки и группы читаются через кеш, проверка паролей - напрямую
	directory.Instance = directory.NewCachedInstance(directory.NewInstance(settings))
}

func initWorkers(ctx context.Context) {
	// Задача напоминаний руководителям о заявках на согласовании
	reminder.StartWorker(ctx)
}
