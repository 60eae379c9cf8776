package initializers

import (
	"access-request-backend/config"
	s3client "access-request-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	if !*config.Conf.S3.Enabled {
		log.Info("Интеграция с S3 отключена")
		return
	}
	err := s3client.Connect(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, config.Conf.S3.BucketName, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
