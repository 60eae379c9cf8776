package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"access-request-backend/config"
	"access-request-backend/db"
	appsystem "access-request-backend/lib/dicts/app-system"
	notifystore "access-request-backend/lib/notify/store"
	"access-request-backend/lib/smtp"
	usersstore "access-request-backend/lib/users/store"
	"access-request-backend/models"
	notifyapimodels "access-request-backend/models/api/notify"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	// Dispatch - отправка уведомления по триггеру. Шаблон берётся из
	// настроенных администратором, при его отсутствии - запасной
	Dispatch(trigger models.EmailTriggerType, rec dbmodels.AuthorizationRequest) error

	CreateTemplate(data notifyapimodels.EmailTemplateData, createdByID string) (id string, err error)
	GetTemplate(id string) (view *notifyapimodels.EmailTemplateView, err error)
	ListTemplates(onlyActive bool) (list []notifyapimodels.EmailTemplateView, err error)
	UpdateTemplate(id string, data notifyapimodels.EmailTemplateData) error
	DeleteTemplate(id string) error
}

func NewHandler() Provider {
	return &impl{
		store:   notifystore.NewInstance(db.DB),
		smtp:    smtp.Instance,
		systems: appsystem.Instance,
		users:   usersstore.NewInstance(db.DB),
		domain:  config.Conf.App.Domain,
	}
}

type impl struct {
	store   notifystore.Provider
	smtp    smtp.Provider
	systems appsystem.Provider
	users   usersstore.Provider
	domain  string
}

func (i impl) Dispatch(trigger models.EmailTriggerType, rec dbmodels.AuthorizationRequest) error {
	logger := log.
		WithField("request_id", rec.ID).
		WithField("trigger", trigger)
	subject, body, recipientType, customRecipients, err := i.resolveTemplate(trigger)
	if err != nil {
		return errors.Wrap(err, "ошибка получения шаблона письма")
	}
	if subject == "" {
		logger.Warn("Для триггера нет шаблона, уведомление пропущено")
		return nil
	}
	subject = i.substitute(subject, rec)
	body = i.substitute(body, rec)
	recipients := i.resolveRecipients(recipientType, customRecipients, rec)
	if len(recipients) == 0 {
		logger.Warn("Не удалось определить получателей, уведомление пропущено")
		return nil
	}
	for _, to := range recipients {
		if err := i.smtp.SendEMail(to, subject, body); err != nil {
			logger.WithError(err).WithField("recipient", to).Error("Ошибка отправки уведомления")
		}
	}
	return nil
}

func (i impl) resolveTemplate(trigger models.EmailTriggerType) (subject, body string, recipientType models.RecipientType, customRecipients string, err error) {
	rec, err := i.store.FindActiveByTrigger(trigger)
	if err != nil {
		return "", "", "", "", err
	}
	if rec != nil {
		return rec.Subject, rec.Body, rec.RecipientType, rec.CustomRecipients, nil
	}
	def, exist := defaultTemplates[trigger]
	if !exist {
		return "", "", "", "", nil
	}
	return def.Subject, def.Body, def.RecipientType, "", nil
}

func (i impl) substitute(text string, rec dbmodels.AuthorizationRequest) string {
	userName := ""
	userEmail := ""
	if rec.User != nil {
		userName = rec.User.GetDisplayName()
		userEmail = rec.User.Email
	}
	managerName := ""
	managerEmail := ""
	if rec.Manager != nil {
		managerName = rec.Manager.GetDisplayName()
		managerEmail = rec.Manager.Email
	}
	replacer := strings.NewReplacer(
		"{RequestId}", rec.ID,
		"{UserName}", userName,
		"{UserFullName}", userName,
		"{UserEmail}", userEmail,
		"{ManagerName}", managerName,
		"{ManagerEmail}", managerEmail,
		"{Status}", rec.Status.ToHuman(),
		"{ServiceLevel}", rec.ServiceLevel.ToHuman(),
		"{SelectedSystems}", i.resolveSystemNames(rec.SelectedSystems),
		"{Comments}", rec.Comments,
		"{CreatedDate}", rec.CreatedAt.Format("02.01.2006 15:04"),
		"{RejectionReason}", rec.RejectionReason,
		"{ManagerApprovalLink}", fmt.Sprintf("%v/requests/%v/manager-approval", i.domain, rec.ID),
		"{FinalApprovalLink}", fmt.Sprintf("%v/requests/%v/final-approval", i.domain, rec.ID),
		"{DetailsLink}", fmt.Sprintf("%v/requests/%v", i.domain, rec.ID),
	)
	return replacer.Replace(text)
}

// resolveSystemNames - список ИД систем заявки переводится в их наименования,
// при ошибке разбора подставляется исходная строка
func (i impl) resolveSystemNames(serialized string) string {
	if serialized == "" {
		return ""
	}
	ids := []string{}
	if err := json.Unmarshal([]byte(serialized), &ids); err != nil {
		return serialized
	}
	if i.systems == nil {
		return strings.Join(ids, ", ")
	}
	names, err := i.systems.ResolveNames(ids)
	if err != nil || len(names) == 0 {
		log.WithError(err).Warn("Не удалось получить наименования систем для письма")
		return strings.Join(ids, ", ")
	}
	return strings.Join(names, ", ")
}

func (i impl) resolveRecipients(recipientType models.RecipientType, customRecipients string, rec dbmodels.AuthorizationRequest) []string {
	switch recipientType {
	case models.RecipientUser:
		if rec.User != nil && rec.User.Email != "" {
			return []string{rec.User.Email}
		}
	case models.RecipientManager:
		if rec.Manager != nil && rec.Manager.Email != "" {
			return []string{rec.Manager.Email}
		}
	case models.RecipientFinalApprover:
		if rec.FinalApprover != nil && rec.FinalApprover.Email != "" {
			return []string{rec.FinalApprover.Email}
		}
		// финальный согласующий ещё не назначен - уведомляем администраторов
		admins, err := i.users.ListByRole(models.UserRoleAdmin)
		if err != nil {
			log.WithError(err).Error("Ошибка получения списка администраторов")
			return nil
		}
		recipients := []string{}
		for _, admin := range admins {
			if admin.Email != "" {
				recipients = append(recipients, admin.Email)
			}
		}
		return recipients
	case models.RecipientCustom:
		recipients := []string{}
		for _, raw := range strings.Split(customRecipients, ",") {
			addr := strings.TrimSpace(raw)
			if addr != "" {
				recipients = append(recipients, addr)
			}
		}
		return recipients
	}
	return nil
}

func (i impl) CreateTemplate(data notifyapimodels.EmailTemplateData, createdByID string) (id string, err error) {
	rec := dbmodels.EmailTemplate{
		Name:             data.Name,
		Description:      data.Description,
		TriggerType:      data.TriggerType,
		Subject:          data.Subject,
		Body:             data.Body,
		IsActive:         true,
		RecipientType:    data.RecipientType,
		CustomRecipients: data.CustomRecipients,
		CreatedByID:      createdByID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания шаблона письма")
	}
	return id, nil
}

func (i impl) GetTemplate(id string) (*notifyapimodels.EmailTemplateView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона письма")
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModel()
	return &view, nil
}

func (i impl) ListTemplates(onlyActive bool) (list []notifyapimodels.EmailTemplateView, err error) {
	recs, err := i.store.List(onlyActive)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка шаблонов писем")
	}
	list = make([]notifyapimodels.EmailTemplateView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) UpdateTemplate(id string, data notifyapimodels.EmailTemplateData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения шаблона письма")
	}
	if rec == nil {
		return errors.New("шаблон письма не найден")
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":              data.Name,
		"description":       data.Description,
		"trigger_type":      data.TriggerType,
		"subject":           data.Subject,
		"body":              data.Body,
		"recipient_type":    data.RecipientType,
		"custom_recipients": data.CustomRecipients,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка обновления шаблона письма")
	}
	return nil
}

func (i impl) DeleteTemplate(id string) error {
	err := i.store.Update(id, map[string]interface{}{
		"is_active": false,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления шаблона письма")
	}
	return nil
}
