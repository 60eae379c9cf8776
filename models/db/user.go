package dbmodels

import (
	"access-request-backend/models"
	userapimodels "access-request-backend/models/api/auth"
)

type User struct {
	BaseModel
	UserName        string `gorm:"type:varchar(255);uniqueIndex"`
	FullName        string `gorm:"type:varchar(255)"`
	Email           string `gorm:"type:varchar(255);index"`
	Department      string `gorm:"type:varchar(255)"`
	Password        string `gorm:"type:varchar(128)"`
	Role            models.UserRole `gorm:"type:varchar(50)"`
	IsActive        bool
	IsFromDirectory bool
	// ManagerID - подсказка по линии подчинения, маршрутизацию согласования
	// определяет ManagerID самой заявки
	ManagerID *string `gorm:"type:varchar(36)"`
	Manager   *User   `gorm:"foreignKey:ManagerID"`
}

func (r User) GetDisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.UserName
}

func (r User) ToModel() userapimodels.UserView {
	return userapimodels.UserView{
		ID: r.ID,
		UserData: userapimodels.UserData{
			UserName:   r.UserName,
			FullName:   r.FullName,
			Email:      r.Email,
			Department: r.Department,
			Role:       r.Role,
		},
		RoleName:  r.Role.ToHuman(),
		IsAdmin:   r.Role.IsAdmin(),
		IsManager: r.Role.IsManager(),
		IsActive:  r.IsActive,
	}
}
