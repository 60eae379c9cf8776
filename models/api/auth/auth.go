package authapimodels

import (
	"access-request-backend/models"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("не указана почта")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type JWTResponse struct {
	Token string `json:"access_token"`
}

type UserData struct {
	UserName   string          `json:"user_name"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	Role       models.UserRole `json:"role"`
}

func (r UserData) Validate() error {
	if r.UserName == "" {
		return errors.New("не указано имя пользователя")
	}
	if r.Email == "" {
		return errors.New("не указана почта")
	}
	return nil
}

type UserView struct {
	ID string `json:"id"`
	UserData
	RoleName  string `json:"role_name"`
	IsAdmin   bool   `json:"is_admin"`
	IsManager bool   `json:"is_manager"`
	IsActive  bool   `json:"is_active"`
}

type UserCreateData struct {
	UserData
	Password  string  `json:"password"`
	ManagerID *string `json:"manager_id,omitempty"`
}

type SetRoleData struct {
	Role models.UserRole `json:"role"`
}

func (r SetRoleData) Validate() error {
	switch r.Role {
	case models.UserRoleAdmin, models.UserRoleManager, models.UserRoleUser:
		return nil
	}
	return errors.Errorf("недопустимая роль: %v", r.Role)
}
