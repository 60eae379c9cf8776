package db

import (
	"access-request-backend/config"
	appsystemstore "access-request-backend/lib/dicts/app-system/store"
	usersstore "access-request-backend/lib/users/store"
	authhelpers "access-request-backend/lib/utils/auth-helpers"
	"access-request-backend/models"
	dbmodels "access-request-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin()
	addApplicationSystems()
}

func addAdmin() {
	if config.Conf.Auth.AdminEmail == "" {
		log.Warn("администратор не добавлен, отсутствует настройка AUTH_ADMIN_EMAIL")
		return
	}
	store := usersstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Auth.AdminEmail)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		UserName: config.Conf.Auth.AdminEmail,
		FullName: "Администратор системы",
		Email:    config.Conf.Auth.AdminEmail,
		Password: authhelpers.GetMD5Hash(config.Conf.Auth.AdminPassword),
		Role:     models.UserRoleAdmin,
		IsActive: true,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
	}
}

// addApplicationSystems - стартовый справочник систем, заполняется
// только при пустой таблице
func addApplicationSystems() {
	store := appsystemstore.NewInstance(DB)
	list, err := store.List(false)
	if err != nil {
		log.WithError(err).Error("ошибка проверки справочника систем")
		return
	}
	if len(list) != 0 {
		return
	}
	defaults := []dbmodels.ApplicationSystem{
		{Name: "Электронная почта", Description: "Корпоративная почтовая система", IsActive: true},
		{Name: "Файловое хранилище", Description: "Сетевые папки подразделений", IsActive: true},
		{Name: "CRM", Description: "Система работы с клиентами", IsActive: true},
	}
	for _, rec := range defaults {
		if _, err := store.Create(rec); err != nil {
			log.WithError(err).WithField("name", rec.Name).Error("ошибка добавления системы в справочник")
		}
	}
}
