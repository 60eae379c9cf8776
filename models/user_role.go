package models

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN_ROLE"
	UserRoleManager UserRole = "MANAGER_ROLE"
	UserRoleUser    UserRole = "USER_ROLE"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:   "Администратор",
	UserRoleManager: "Руководитель",
	UserRoleUser:    "Пользователь",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// IsManager - администратор всегда может выступать в роли руководителя
func (r UserRole) IsManager() bool {
	return r == UserRoleManager || r == UserRoleAdmin
}

const SystemUser = "Система"
