package notifystore

import (
	"access-request-backend/models"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.EmailTemplate) (id string, err error)
	GetByID(id string) (rec *dbmodels.EmailTemplate, err error)
	List(onlyActive bool) (list []dbmodels.EmailTemplate, err error)
	Update(id string, updMap map[string]interface{}) error
	// FindActiveByTrigger - действующий шаблон для триггера, берётся самый свежий
	FindActiveByTrigger(trigger models.EmailTriggerType) (rec *dbmodels.EmailTemplate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EmailTemplate) (id string, err error) {
	err = i.db.
		Omit("CreatedBy").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.EmailTemplate, error) {
	rec := dbmodels.EmailTemplate{}
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

func (i impl) List(onlyActive bool) (list []dbmodels.EmailTemplate, err error) {
	list = []dbmodels.EmailTemplate{}
	tx := i.db.Order("name ASC")
	if onlyActive {
		tx = tx.Where("is_active = true")
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.EmailTemplate{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindActiveByTrigger(trigger models.EmailTriggerType) (*dbmodels.EmailTemplate, error) {
	rec := dbmodels.EmailTemplate{}
	err := i.db.
		Where("trigger_type = ? AND is_active = true", trigger).
		Order("created_at DESC").
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
