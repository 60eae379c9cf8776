package employee

import (
	"access-request-backend/db"
	employeestore "access-request-backend/lib/dicts/employee/store"
	dictapimodels "access-request-backend/models/api/dict"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
)

var Instance Provider

type Provider interface {
	Create(data dictapimodels.EmployeeData) (id string, err error)
	GetByID(id string) (view *dictapimodels.EmployeeView, err error)
	List(onlyActive bool) (list []dictapimodels.EmployeeView, err error)
	Update(id string, data dictapimodels.EmployeeData) error
	Delete(id string) error
}

func NewHandler() Provider {
	return &impl{
		store: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) Create(data dictapimodels.EmployeeData) (id string, err error) {
	rec := dbmodels.Employee{
		EmployeeID: data.EmployeeID,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Department: data.Department,
		Position:   data.Position,
		Email:      data.Email,
		Phone:      data.Phone,
		IsActive:   true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания сотрудника")
	}
	return id, nil
}

func (i impl) GetByID(id string) (*dictapimodels.EmployeeView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModel()
	return &view, nil
}

func (i impl) List(onlyActive bool) (list []dictapimodels.EmployeeView, err error) {
	recs, err := i.store.List(onlyActive)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	list = make([]dictapimodels.EmployeeView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) Update(id string, data dictapimodels.EmployeeData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения сотрудника")
	}
	if rec == nil {
		return errors.New("сотрудник не найден")
	}
	updMap := map[string]interface{}{
		"employee_id": data.EmployeeID,
		"first_name":  data.FirstName,
		"last_name":   data.LastName,
		"department":  data.Department,
		"position":    data.Position,
		"email":       data.Email,
		"phone":       data.Phone,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления сотрудника")
	}
	return nil
}

// Delete - мягкое удаление, запись остаётся для истории заявок
func (i impl) Delete(id string) error {
	err := i.store.Update(id, map[string]interface{}{
		"is_active": false,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления сотрудника")
	}
	return nil
}
