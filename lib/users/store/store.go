package usersstore

import (
	"access-request-backend/models"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) (id string, err error)
	GetByID(id string) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	FindByUserName(userName string) (rec *dbmodels.User, err error)
	Update(id string, updMap map[string]interface{}) error
	ListByRole(role models.UserRole) (list []dbmodels.User, err error)
	Search(term string, limit int) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id string, err error) {
	err = i.db.
		Omit("Manager").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByEmail(email string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByUserName(userName string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("user_name = ?", userName).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByRole(role models.UserRole) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	tx := i.db.
		Where("is_active = true").
		Order("full_name ASC")
	if role == models.UserRoleManager {
		// администратор всегда может выступать согласующим
		tx = tx.Where("role IN ?", []models.UserRole{models.UserRoleManager, models.UserRoleAdmin})
	} else {
		tx = tx.Where("role = ?", role)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Search(term string, limit int) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	pattern := "%" + term + "%"
	err = i.db.
		Where("user_name ILIKE ? OR full_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Where("role IN ?", []models.UserRole{models.UserRoleManager, models.UserRoleAdmin}).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
