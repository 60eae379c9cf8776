package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		// Domain - базовый адрес для ссылок в письмах
		Domain string `default:"http://localhost:8080" env:"APP_DOMAIN"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"access-request" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
		// AdminEmail/AdminPassword - учетная запись администратора, заводится при миграции
		AdminEmail    string `default:"" env:"AUTH_ADMIN_EMAIL"`
		AdminPassword string `default:"" env:"AUTH_ADMIN_PASSWORD"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"" env:"SMTP_FROM"`
	}
	Directory struct {
		Enabled *bool  `default:"false" env:"DIRECTORY_ENABLED"`
		Addr    string `default:"" env:"DIRECTORY_ADDR"`
		BaseDN  string `default:"" env:"DIRECTORY_BASE_DN"`
		// BindUser/BindPassword - сервисная учетная запись для поиска
		BindUser        string `default:"" env:"DIRECTORY_BIND_USER"`
		BindPassword    string `default:"" env:"DIRECTORY_BIND_PASSWORD"`
		ManagementGroup string `default:"" env:"DIRECTORY_MANAGEMENT_GROUP"`
	}
	Reminder struct {
		Enabled *bool `default:"true" env:"REMINDER_ENABLED"`
		// CheckIntervalHours - период обхода, ReminderIntervalHours - порог давности
		CheckIntervalHours    int `default:"6" env:"REMINDER_CHECK_INTERVAL_HOURS"`
		ReminderIntervalHours int `default:"24" env:"REMINDER_INTERVAL_HOURS"`
	}
	Pdf struct {
		OutputDir string `default:"pdfs" env:"PDF_OUTPUT_DIR"`
		FontDir   string `default:"static/font/" env:"PDF_FONT_DIR"`
	}
	S3 struct {
		Enabled         *bool  `default:"false" env:"S3_ENABLED"`
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"true" env:"S3_USE_SSL"`
		BucketName      string `default:"access-request-pdf" env:"S3_BUCKET_NAME"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
