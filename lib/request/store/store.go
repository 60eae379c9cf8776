package requeststore

import (
	"time"

	"access-request-backend/models"
	requestapimodels "access-request-backend/models/api/request"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	CreateWithHistory(rec dbmodels.AuthorizationRequest, hist []dbmodels.RequestHistory) (id string, err error)
	// UpdateWithHistory - переход заявки единой транзакцией: обновление записи
	// плюс добавление строк журнала
	UpdateWithHistory(id string, updMap map[string]interface{}, hist []dbmodels.RequestHistory) error
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.AuthorizationRequest, err error)
	List(filter requestapimodels.RequestFilter) (list []dbmodels.AuthorizationRequest, err error)
	// ListAll - полный отфильтрованный список без постраничного ограничения
	ListAll(filter requestapimodels.RequestFilter) (list []dbmodels.AuthorizationRequest, err error)
	ListCount(filter requestapimodels.RequestFilter) (rowCount int64, err error)
	ListByStatus(status models.RequestStatus) (list []dbmodels.AuthorizationRequest, err error)
	CountByStatus(managerID string) (counts map[models.RequestStatus]int64, total int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateWithHistory(rec dbmodels.AuthorizationRequest, hist []dbmodels.RequestHistory) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Omit("User", "Manager", "FinalApprover", "ChangedByAdmin", "History").
			Save(&rec).
			Error
		if err != nil {
			return err
		}
		for idx := range hist {
			hist[idx].RequestID = rec.ID
			if err := tx.Create(&hist[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) UpdateWithHistory(id string, updMap map[string]interface{}, hist []dbmodels.RequestHistory) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		updMap["updated_at"] = time.Now()
		err := tx.
			Model(&dbmodels.AuthorizationRequest{}).
			Where("id = ?", id).
			Updates(updMap).
			Error
		if err != nil {
			return err
		}
		for idx := range hist {
			hist[idx].RequestID = id
			if err := tx.Create(&hist[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.AuthorizationRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.AuthorizationRequest, error) {
	rec := dbmodels.AuthorizationRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("User").
		Preload("Manager").
		Preload("FinalApprover").
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

func (i impl) listQuery(filter requestapimodels.RequestFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.AuthorizationRequest{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ManagerID != "" {
		tx = tx.Where("manager_id = ?", filter.ManagerID)
	}
	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	return tx
}

func (i impl) List(filter requestapimodels.RequestFilter) (list []dbmodels.AuthorizationRequest, err error) {
	list = []dbmodels.AuthorizationRequest{}
	page, limit := filter.GetPage()
	err = i.listQuery(filter).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("User").
		Preload("Manager").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListAll(filter requestapimodels.RequestFilter) (list []dbmodels.AuthorizationRequest, err error) {
	list = []dbmodels.AuthorizationRequest{}
	err = i.listQuery(filter).
		Order("created_at DESC").
		Preload("User").
		Preload("Manager").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter requestapimodels.RequestFilter) (rowCount int64, err error) {
	err = i.listQuery(filter).Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) ListByStatus(status models.RequestStatus) (list []dbmodels.AuthorizationRequest, err error) {
	list = []dbmodels.AuthorizationRequest{}
	err = i.db.
		Where("status = ?", status).
		Preload("User").
		Preload("Manager").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) CountByStatus(managerID string) (counts map[models.RequestStatus]int64, total int64, err error) {
	type row struct {
		Status models.RequestStatus
		Cnt    int64
	}
	rows := []row{}
	tx := i.db.
		Model(&dbmodels.AuthorizationRequest{}).
		Select("status, count(*) as cnt").
		Group("status")
	if managerID != "" {
		tx = tx.Where("manager_id = ? OR user_id = ?", managerID, managerID)
	}
	err = tx.Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	counts = map[models.RequestStatus]int64{}
	for _, r := range rows {
		counts[r.Status] = r.Cnt
		total += r.Cnt
	}
	return counts, total, nil
}
