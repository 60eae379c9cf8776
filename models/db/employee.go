package dbmodels

import (
	dictapimodels "access-request-backend/models/api/dict"
)

type Employee struct {
	BaseModel
	EmployeeID string `gorm:"type:varchar(50);uniqueIndex"`
	FirstName  string `gorm:"type:varchar(150)"`
	LastName   string `gorm:"type:varchar(150)"`
	Department string `gorm:"type:varchar(255)"`
	Position   string `gorm:"type:varchar(255)"`
	Email      string `gorm:"type:varchar(255)"`
	Phone      string `gorm:"type:varchar(50)"`
	IsActive   bool
}

func (r Employee) GetFullName() string {
	return r.FirstName + " " + r.LastName
}

func (r Employee) ToModel() dictapimodels.EmployeeView {
	return dictapimodels.EmployeeView{
		ID: r.ID,
		EmployeeData: dictapimodels.EmployeeData{
			EmployeeID: r.EmployeeID,
			FirstName:  r.FirstName,
			LastName:   r.LastName,
			Department: r.Department,
			Position:   r.Position,
			Email:      r.Email,
			Phone:      r.Phone,
		},
		IsActive: r.IsActive,
	}
}
