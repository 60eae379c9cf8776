package models

type EmailTriggerType string

const (
	TriggerRequestCreated            EmailTriggerType = "REQUEST_CREATED"
	TriggerManagerApprovalRequest    EmailTriggerType = "MANAGER_APPROVAL_REQUEST"
	TriggerManagerApproved           EmailTriggerType = "MANAGER_APPROVED"
	TriggerManagerRejected           EmailTriggerType = "MANAGER_REJECTED"
	TriggerFinalApprovalRequest      EmailTriggerType = "FINAL_APPROVAL_REQUEST"
	TriggerFinalApproved             EmailTriggerType = "FINAL_APPROVED"
	TriggerFinalRejected             EmailTriggerType = "FINAL_REJECTED"
	TriggerRequestCancelledByUser    EmailTriggerType = "REQUEST_CANCELLED_BY_USER"
	TriggerRequestCancelledByManager EmailTriggerType = "REQUEST_CANCELLED_BY_MANAGER"
	TriggerStatusChanged             EmailTriggerType = "STATUS_CHANGED"
)

var triggerHumanName = map[EmailTriggerType]string{
	TriggerRequestCreated:            "Заявка создана",
	TriggerManagerApprovalRequest:    "Запрошено согласование руководителя",
	TriggerManagerApproved:           "Согласована руководителем",
	TriggerManagerRejected:           "Отклонена руководителем",
	TriggerFinalApprovalRequest:      "Запрошено финальное согласование",
	TriggerFinalApproved:             "Согласована финально",
	TriggerFinalRejected:             "Отклонена финально",
	TriggerRequestCancelledByUser:    "Отменена пользователем",
	TriggerRequestCancelledByManager: "Отменена руководителем",
	TriggerStatusChanged:             "Статус изменен",
}

func (t EmailTriggerType) ToHuman() string {
	if human, exist := triggerHumanName[t]; exist {
		return human
	}
	return string(t)
}

type RecipientType string

const (
	RecipientUser          RecipientType = "USER"
	RecipientManager       RecipientType = "MANAGER"
	RecipientFinalApprover RecipientType = "FINAL_APPROVER"
	RecipientCustom        RecipientType = "CUSTOM"
)
