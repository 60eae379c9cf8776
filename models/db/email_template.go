package dbmodels

import (
	"access-request-backend/models"
	notifyapimodels "access-request-backend/models/api/notify"
)

type EmailTemplate struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	TriggerType models.EmailTriggerType `gorm:"type:varchar(50);index"`
	Subject     string `gorm:"type:varchar(255)"`
	// Body - HTML шаблон с плейсхолдерами вида {RequestId}
	Body          string
	IsActive      bool
	RecipientType models.RecipientType `gorm:"type:varchar(50)"`
	// CustomRecipients - список адресов через запятую для RecipientType=CUSTOM
	CustomRecipients string
	CreatedByID      string `gorm:"type:varchar(36)"`
	CreatedBy        *User  `gorm:"foreignKey:CreatedByID"`
}

func (r EmailTemplate) ToModel() notifyapimodels.EmailTemplateView {
	return notifyapimodels.EmailTemplateView{
		ID: r.ID,
		EmailTemplateData: notifyapimodels.EmailTemplateData{
			Name:             r.Name,
			Description:      r.Description,
			TriggerType:      r.TriggerType,
			Subject:          r.Subject,
			Body:             r.Body,
			RecipientType:    r.RecipientType,
			CustomRecipients: r.CustomRecipients,
		},
		IsActive: r.IsActive,
	}
}
