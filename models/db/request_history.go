package dbmodels

import (
	"access-request-backend/models"
)

// RequestHistory - журнал переходов заявки, записи не изменяются после создания
type RequestHistory struct {
	BaseModel
	RequestID      string `gorm:"type:varchar(36);index"`
	PreviousStatus models.RequestStatus `gorm:"type:varchar(50)"`
	NewStatus      models.RequestStatus `gorm:"type:varchar(50)"`
	// ActionPerformedBy - снимок отображаемого имени на момент действия
	ActionPerformedByID string `gorm:"type:varchar(36)"`
	ActionPerformedBy   string `gorm:"type:varchar(255)"`
	Comments            string
}
