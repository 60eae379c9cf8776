package appsystem

import (
	"access-request-backend/db"
	appsystemstore "access-request-backend/lib/dicts/app-system/store"
	dictapimodels "access-request-backend/models/api/dict"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
)

var Instance Provider

type Provider interface {
	Create(data dictapimodels.AppSystemData) (id string, err error)
	GetByID(id string) (view *dictapimodels.AppSystemView, err error)
	List(onlyActive bool) (list []dictapimodels.AppSystemView, err error)
	Update(id string, data dictapimodels.AppSystemData) error
	Delete(id string) error
	// ResolveNames - наименования систем по списку идентификаторов,
	// используется при подстановке в письма
	ResolveNames(ids []string) (names []string, err error)
}

func NewHandler() Provider {
	return &impl{
		store: appsystemstore.NewInstance(db.DB),
	}
}

type impl struct {
	store appsystemstore.Provider
}

func (i impl) Create(data dictapimodels.AppSystemData) (id string, err error) {
	rec := dbmodels.ApplicationSystem{
		Name:        data.Name,
		Description: data.Description,
		IsActive:    true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания системы")
	}
	return id, nil
}

func (i impl) GetByID(id string) (*dictapimodels.AppSystemView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения системы")
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModel()
	return &view, nil
}

func (i impl) List(onlyActive bool) (list []dictapimodels.AppSystemView, err error) {
	recs, err := i.store.List(onlyActive)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка систем")
	}
	list = make([]dictapimodels.AppSystemView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) Update(id string, data dictapimodels.AppSystemData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения системы")
	}
	if rec == nil {
		return errors.New("система не найдена")
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":        data.Name,
		"description": data.Description,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка обновления системы")
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.store.Update(id, map[string]interface{}{
		"is_active": false,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления системы")
	}
	return nil
}

func (i impl) ResolveNames(ids []string) (names []string, err error) {
	recs, err := i.store.GetByIDs(ids)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения систем")
	}
	names = make([]string, 0, len(recs))
	for _, rec := range recs {
		names = append(names, rec.Name)
	}
	return names, nil
}
