package dbmodels

import (
	dictapimodels "access-request-backend/models/api/dict"
)

// ApplicationSystem - справочник систем, на доступ к которым подаются заявки
type ApplicationSystem struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	IsActive    bool
}

func (r ApplicationSystem) ToModel() dictapimodels.AppSystemView {
	return dictapimodels.AppSystemView{
		ID: r.ID,
		AppSystemData: dictapimodels.AppSystemData{
			Name:        r.Name,
			Description: r.Description,
		},
		IsActive: r.IsActive,
	}
}
