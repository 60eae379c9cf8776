package models

type RequestStatus string

const (
	RequestStatusDraft                  RequestStatus = "DRAFT"
	RequestStatusPendingManagerApproval RequestStatus = "PENDING_MANAGER_APPROVAL"
	RequestStatusPendingFinalApproval   RequestStatus = "PENDING_FINAL_APPROVAL"
	RequestStatusApproved               RequestStatus = "APPROVED"
	RequestStatusRejected               RequestStatus = "REJECTED"
	RequestStatusCancelledByUser        RequestStatus = "CANCELLED_BY_USER"
	RequestStatusCancelledByManager     RequestStatus = "CANCELLED_BY_MANAGER"
	RequestStatusManagerChanged         RequestStatus = "MANAGER_CHANGED"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusDraft:                  "Черновик",
	RequestStatusPendingManagerApproval: "Ожидает согласования руководителем",
	RequestStatusPendingFinalApproval:   "Ожидает финального согласования",
	RequestStatusApproved:               "Согласована",
	RequestStatusRejected:               "Отклонена",
	RequestStatusCancelledByUser:        "Отменена пользователем",
	RequestStatusCancelledByManager:     "Отменена руководителем",
	RequestStatusManagerChanged:         "Руководитель изменен",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsFinal - из финального статуса заявка в процесс согласования не возвращается
func (s RequestStatus) IsFinal() bool {
	switch s {
	case RequestStatusApproved, RequestStatusRejected,
		RequestStatusCancelledByUser, RequestStatusCancelledByManager:
		return true
	}
	return false
}

func (s RequestStatus) AllowManagerDecision() bool {
	return s == RequestStatusPendingManagerApproval
}

func (s RequestStatus) AllowFinalDecision() bool {
	return s == RequestStatusPendingFinalApproval
}

func (s RequestStatus) AllowCancelByUser() bool {
	return s == RequestStatusDraft || s == RequestStatusPendingManagerApproval
}

func (s RequestStatus) AllowCancelByManager() bool {
	return s == RequestStatusPendingManagerApproval || s == RequestStatusPendingFinalApproval
}

type ServiceLevel string

const (
	ServiceLevelUser          ServiceLevel = "USER_LEVEL"
	ServiceLevelOtherUser     ServiceLevel = "OTHER_USER_LEVEL"
	ServiceLevelMultipleUsers ServiceLevel = "MULTIPLE_USERS"
)

var serviceLevelHumanName = map[ServiceLevel]string{
	ServiceLevelUser:          "Уровень пользователя",
	ServiceLevelOtherUser:     "Уровень другого пользователя",
	ServiceLevelMultipleUsers: "Несколько пользователей",
}

func (s ServiceLevel) ToHuman() string {
	if human, exist := serviceLevelHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ServiceLevel) IsValid() bool {
	_, exist := serviceLevelHumanName[s]
	return exist
}
