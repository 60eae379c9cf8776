package dbmodels

import (
	dictapimodels "access-request-backend/models/api/dict"
)

type FormTemplate struct {
	BaseModel
	Name            string `gorm:"type:varchar(255)"`
	Description     string
	TemplateContent string
	PdfTemplatePath string `gorm:"type:varchar(512)"`
	IsActive        bool
	CreatedByID     string `gorm:"type:varchar(36)"`
	CreatedBy       *User  `gorm:"foreignKey:CreatedByID"`
}

func (r FormTemplate) ToModel() dictapimodels.FormTemplateView {
	return dictapimodels.FormTemplateView{
		ID: r.ID,
		FormTemplateData: dictapimodels.FormTemplateData{
			Name:            r.Name,
			Description:     r.Description,
			TemplateContent: r.TemplateContent,
			PdfTemplatePath: r.PdfTemplatePath,
		},
		IsActive: r.IsActive,
	}
}
