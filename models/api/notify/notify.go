package notifyapimodels

import (
	"access-request-backend/models"

	"github.com/pkg/errors"
)

type EmailTemplateData struct {
	Name             string                  `json:"name"`
	Description      string                  `json:"description,omitempty"`
	TriggerType      models.EmailTriggerType `json:"trigger_type"`
	Subject          string                  `json:"subject"`
	Body             string                  `json:"body"`
	RecipientType    models.RecipientType    `json:"recipient_type"`
	CustomRecipients string                  `json:"custom_recipients,omitempty"`
}

func (r EmailTemplateData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано наименование шаблона")
	}
	if r.TriggerType == "" {
		return errors.New("не указан триггер отправки")
	}
	if r.Subject == "" || r.Body == "" {
		return errors.New("не указаны тема и тело письма")
	}
	if r.RecipientType == models.RecipientCustom && r.CustomRecipients == "" {
		return errors.New("для типа получателя CUSTOM требуется список адресов")
	}
	return nil
}

type EmailTemplateView struct {
	ID string `json:"id"`
	EmailTemplateData
	IsActive bool `json:"is_active"`
}
