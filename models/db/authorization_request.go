package dbmodels

import (
	"time"

	"access-request-backend/models"
)

type AuthorizationRequest struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);index"`
	User   *User  `gorm:"foreignKey:UserID"`

	ServiceLevel models.ServiceLevel `gorm:"type:varchar(50)"`
	// SelectedEmployees/SelectedSystems - сериализованные списки ИД справочников,
	// движок согласования их не интерпретирует
	SelectedEmployees string
	SelectedSystems   string
	Comments          string

	ManagerID string `gorm:"type:varchar(36);index"`
	Manager   *User  `gorm:"foreignKey:ManagerID"`

	FinalApproverID *string `gorm:"type:varchar(36)"`
	FinalApprover   *User   `gorm:"foreignKey:FinalApproverID"`

	Status models.RequestStatus `gorm:"type:varchar(50);index"`

	ManagerApprovedAt        *time.Time
	ManagerApprovalSignature string `gorm:"type:varchar(255)"`

	FinalApprovedAt       *time.Time
	FinalApprovalDecision string `gorm:"type:varchar(50)"`
	FinalApprovalComments string

	DisclosureAcknowledged   bool
	DisclosureAcknowledgedAt *time.Time

	RejectionReason string

	ChangedByAdminID  *string `gorm:"type:varchar(36)"`
	ChangedByAdmin    *User   `gorm:"foreignKey:ChangedByAdminID"`
	PreviousManagerID *string `gorm:"type:varchar(36)"`
	ManagerChangedAt  *time.Time

	PdfPath string `gorm:"type:varchar(512)"`

	LastReminderSentAt *time.Time
	ReminderCount      int

	History []RequestHistory `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}
