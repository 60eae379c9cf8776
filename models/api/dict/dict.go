package dictapimodels

import (
	"github.com/pkg/errors"
)

type EmployeeData struct {
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func (r EmployeeData) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("не указан табельный номер")
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("не указаны имя и фамилия сотрудника")
	}
	return nil
}

type EmployeeView struct {
	ID string `json:"id"`
	EmployeeData
	IsActive bool `json:"is_active"`
}

type AppSystemData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r AppSystemData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано наименование системы")
	}
	return nil
}

type AppSystemView struct {
	ID string `json:"id"`
	AppSystemData
	IsActive bool `json:"is_active"`
}

type FormTemplateData struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	TemplateContent string `json:"template_content"`
	PdfTemplatePath string `json:"pdf_template_path,omitempty"`
}

func (r FormTemplateData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано наименование шаблона")
	}
	if r.TemplateContent == "" {
		return errors.New("не указано содержимое шаблона")
	}
	return nil
}

type FormTemplateView struct {
	ID string `json:"id"`
	FormTemplateData
	IsActive bool `json:"is_active"`
}
