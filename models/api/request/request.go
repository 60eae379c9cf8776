package requestapimodels

import (
	"time"

	"access-request-backend/models"
	apimodels "access-request-backend/models/api"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
)

type RequestCreateData struct {
	ServiceLevel        models.ServiceLevel `json:"service_level"`
	SelectedEmployeeIDs []string            `json:"selected_employee_ids"`
	SelectedSystemIDs   []string            `json:"selected_system_ids"`
	Comments            string              `json:"comments"`
	ManagerID           string              `json:"manager_id"`
	// UserEmail/UserFullName - для анонимной подачи, по почте заводится учетная запись
	UserEmail              string `json:"user_email,omitempty"`
	UserFullName           string `json:"user_full_name,omitempty"`
	DisclosureAcknowledged bool   `json:"disclosure_acknowledged"`
}

func (r RequestCreateData) Validate() error {
	if !r.ServiceLevel.IsValid() {
		return errors.New("не указан уровень сервиса")
	}
	if len(r.SelectedSystemIDs) == 0 {
		return errors.New("не выбрана ни одна система")
	}
	if r.ManagerID == "" {
		return errors.New("не указан согласующий руководитель")
	}
	return nil
}

type ManagerDecisionData struct {
	// UserName/Password - повторное подтверждение учетных данных в момент решения
	UserName string `json:"user_name"`
	Password string `json:"password"`
	Approved bool   `json:"approved"`
	Comments string `json:"comments"`
}

func (r ManagerDecisionData) Validate() error {
	if r.UserName == "" || r.Password == "" {
		return errors.New("для решения требуется повторное подтверждение учетных данных")
	}
	return nil
}

type FinalDecisionData struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments"`
}

type ChangeManagerData struct {
	NewManagerID string `json:"new_manager_id"`
}

func (r ChangeManagerData) Validate() error {
	if r.NewManagerID == "" {
		return errors.New("не указан новый руководитель")
	}
	return nil
}

type RequestFilter struct {
	apimodels.Pagination
	Status    models.RequestStatus `json:"status,omitempty"`
	ManagerID string               `json:"manager_id,omitempty"`
	UserID    string               `json:"user_id,omitempty"`
}

type RequestView struct {
	ID                     string               `json:"id"`
	UserID                 string               `json:"user_id"`
	UserName               string               `json:"user_name,omitempty"`
	ManagerID              string               `json:"manager_id"`
	ManagerName            string               `json:"manager_name,omitempty"`
	FinalApproverID        string               `json:"final_approver_id,omitempty"`
	ServiceLevel           models.ServiceLevel  `json:"service_level"`
	ServiceLevelName       string               `json:"service_level_name"`
	SelectedEmployees      string               `json:"selected_employees"`
	SelectedSystems        string               `json:"selected_systems"`
	Comments               string               `json:"comments,omitempty"`
	Status                 models.RequestStatus `json:"status"`
	StatusName             string               `json:"status_name"`
	DisclosureAcknowledged bool                 `json:"disclosure_acknowledged"`
	RejectionReason        string               `json:"rejection_reason,omitempty"`
	FinalApprovalDecision  string               `json:"final_approval_decision,omitempty"`
	FinalApprovalComments  string               `json:"final_approval_comments,omitempty"`
	PdfPath                string               `json:"pdf_path,omitempty"`
	ReminderCount          int                  `json:"reminder_count"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
	ManagerApprovedAt      *time.Time           `json:"manager_approved_at,omitempty"`
	FinalApprovedAt        *time.Time           `json:"final_approved_at,omitempty"`
}

func RequestConvert(rec dbmodels.AuthorizationRequest) RequestView {
	view := RequestView{
		ID:                     rec.ID,
		UserID:                 rec.UserID,
		ManagerID:              rec.ManagerID,
		ServiceLevel:           rec.ServiceLevel,
		ServiceLevelName:       rec.ServiceLevel.ToHuman(),
		SelectedEmployees:      rec.SelectedEmployees,
		SelectedSystems:        rec.SelectedSystems,
		Comments:               rec.Comments,
		Status:                 rec.Status,
		StatusName:             rec.Status.ToHuman(),
		DisclosureAcknowledged: rec.DisclosureAcknowledged,
		RejectionReason:        rec.RejectionReason,
		FinalApprovalDecision:  rec.FinalApprovalDecision,
		FinalApprovalComments:  rec.FinalApprovalComments,
		PdfPath:                rec.PdfPath,
		ReminderCount:          rec.ReminderCount,
		CreatedAt:              rec.CreatedAt,
		UpdatedAt:              rec.UpdatedAt,
		ManagerApprovedAt:      rec.ManagerApprovedAt,
		FinalApprovedAt:        rec.FinalApprovedAt,
	}
	if rec.User != nil {
		view.UserName = rec.User.GetDisplayName()
	}
	if rec.Manager != nil {
		view.ManagerName = rec.Manager.GetDisplayName()
	}
	if rec.FinalApproverID != nil {
		view.FinalApproverID = *rec.FinalApproverID
	}
	return view
}

type HistoryView struct {
	ID                string               `json:"id"`
	PreviousStatus    models.RequestStatus `json:"previous_status"`
	NewStatus         models.RequestStatus `json:"new_status"`
	ActionPerformedBy string               `json:"action_performed_by"`
	Comments          string               `json:"comments,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

func HistoryConvert(rec dbmodels.RequestHistory) HistoryView {
	return HistoryView{
		ID:                rec.ID,
		PreviousStatus:    rec.PreviousStatus,
		NewStatus:         rec.NewStatus,
		ActionPerformedBy: rec.ActionPerformedBy,
		Comments:          rec.Comments,
		CreatedAt:         rec.CreatedAt,
	}
}

type DashboardView struct {
	TotalCount        int64         `json:"total_count"`
	PendingCount      int64         `json:"pending_count"`
	PendingFinalCount int64         `json:"pending_final_count"`
	ApprovedCount     int64         `json:"approved_count"`
	RejectedCount     int64         `json:"rejected_count"`
	PendingApprovals  []RequestView `json:"pending_approvals"`
	RecentRequests    []RequestView `json:"recent_requests"`
}
