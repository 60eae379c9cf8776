package notify

import (
	"access-request-backend/models"
)

// defaultTemplate - запасной шаблон письма, используется когда
// администратор не настроил свой шаблон для триггера
type defaultTemplate struct {
	Subject       string
	Body          string
	RecipientType models.RecipientType
}

var defaultTemplates = map[models.EmailTriggerType]defaultTemplate{
	models.TriggerRequestCreated: {
		Subject:       "Заявка {RequestId} создана",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Ваша заявка на доступ <b>{RequestId}</b> от {CreatedDate} зарегистрирована.</p><p>Системы: {SelectedSystems}</p><p>Текущий статус: {Status}</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerManagerApprovalRequest: {
		Subject:       "Требуется согласование заявки {RequestId}",
		Body:          "<p>Здравствуйте, {ManagerName}!</p><p>Заявка <b>{RequestId}</b> от {UserName} ожидает вашего согласования.</p><p>Уровень сервиса: {ServiceLevel}</p><p>Системы: {SelectedSystems}</p><p>Комментарий заявителя: {Comments}</p>",
		RecipientType: models.RecipientManager,
	},
	models.TriggerManagerApproved: {
		Subject:       "Заявка {RequestId} согласована руководителем",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Заявка <b>{RequestId}</b> согласована руководителем {ManagerName} и передана на финальное согласование.</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerManagerRejected: {
		Subject:       "Заявка {RequestId} отклонена руководителем",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Заявка <b>{RequestId}</b> отклонена руководителем {ManagerName}.</p><p>Причина: {RejectionReason}</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerFinalApprovalRequest: {
		Subject:       "Требуется финальное согласование заявки {RequestId}",
		Body:          "<p>Заявка <b>{RequestId}</b> от {UserName} прошла согласование руководителя и ожидает финального решения.</p><p>Системы: {SelectedSystems}</p>",
		RecipientType: models.RecipientFinalApprover,
	},
	models.TriggerFinalApproved: {
		Subject:       "Заявка {RequestId} согласована",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Заявка <b>{RequestId}</b> согласована финально. Доступ будет предоставлен.</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerFinalRejected: {
		Subject:       "Заявка {RequestId} отклонена",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Заявка <b>{RequestId}</b> отклонена на финальном согласовании.</p><p>Причина: {RejectionReason}</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerRequestCancelledByUser: {
		Subject:       "Заявка {RequestId} отменена",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Ваша заявка <b>{RequestId}</b> отменена по вашему запросу и не будет рассматриваться.</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerRequestCancelledByManager: {
		Subject:       "Заявка {RequestId} отменена руководителем",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Заявка <b>{RequestId}</b> отменена руководителем {ManagerName}.</p><p>Причина: {RejectionReason}</p>",
		RecipientType: models.RecipientUser,
	},
	models.TriggerStatusChanged: {
		Subject:       "Статус заявки {RequestId} изменен",
		Body:          "<p>Здравствуйте, {UserName}!</p><p>Статус заявки <b>{RequestId}</b> изменен: {Status}.</p>",
		RecipientType: models.RecipientUser,
	},
}
