package formtemplate

import (
	"access-request-backend/db"
	formtemplatestore "access-request-backend/lib/dicts/form-template/store"
	dictapimodels "access-request-backend/models/api/dict"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
)

var Instance Provider

type Provider interface {
	Create(data dictapimodels.FormTemplateData, createdByID string) (id string, err error)
	GetByID(id string) (view *dictapimodels.FormTemplateView, err error)
	List(onlyActive bool) (list []dictapimodels.FormTemplateView, err error)
	Update(id string, data dictapimodels.FormTemplateData) error
	Delete(id string) error
}

func NewHandler() Provider {
	return &impl{
		store: formtemplatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store formtemplatestore.Provider
}

func (i impl) Create(data dictapimodels.FormTemplateData, createdByID string) (id string, err error) {
	rec := dbmodels.FormTemplate{
		Name:            data.Name,
		Description:     data.Description,
		TemplateContent: data.TemplateContent,
		PdfTemplatePath: data.PdfTemplatePath,
		IsActive:        true,
		CreatedByID:     createdByID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания шаблона формы")
	}
	return id, nil
}

func (i impl) GetByID(id string) (*dictapimodels.FormTemplateView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона формы")
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModel()
	return &view, nil
}

func (i impl) List(onlyActive bool) (list []dictapimodels.FormTemplateView, err error) {
	recs, err := i.store.List(onlyActive)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка шаблонов форм")
	}
	list = make([]dictapimodels.FormTemplateView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) Update(id string, data dictapimodels.FormTemplateData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения шаблона формы")
	}
	if rec == nil {
		return errors.New("шаблон формы не найден")
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":              data.Name,
		"description":       data.Description,
		"template_content":  data.TemplateContent,
		"pdf_template_path": data.PdfTemplatePath,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка обновления шаблона формы")
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.store.Update(id, map[string]interface{}{
		"is_active": false,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления шаблона формы")
	}
	return nil
}
