package db

import (
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationSystem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationSystem")
	}
	if err := DB.AutoMigrate(&dbmodels.FormTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FormTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.EmailTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EmailTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.AuthorizationRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AuthorizationRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
