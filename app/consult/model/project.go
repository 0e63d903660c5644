package model

import "go-consult/common/models"

const (
	ProjectStatusDraft    = "draft"
	ProjectStatusOpen     = "open"
	ProjectStatusClosed   = "closed"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID           int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string  `json:"name" gorm:"size:255;not null;default:'';"`
	Slug         string  `json:"slug" gorm:"size:128;uniqueIndex;not null;"`
	Description  string  `json:"description" gorm:"type:text;"`
	Status       string  `json:"status" gorm:"size:16;not null;default:'draft';"`
	Public       bool    `json:"public" gorm:"not null;default:false;"`
	ContactEmail string  `json:"contactEmail" gorm:"size:128;"`
	Latitude     float64 `json:"latitude" gorm:"not null;default:0;"`
	Longitude    float64 `json:"longitude" gorm:"not null;default:0;"`
	Zoom         float64 `json:"zoom" gorm:"not null;default:14;"`

	Members []ProjectMember `json:"members" gorm:"foreignKey:ProjectID"`

	models.ModelTime
	models.ControlBy
}

func (Project) TableName() string {
	return "consult_project"
}

type ProjectMember struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID int    `json:"projectId" gorm:"index;not null;"`
	UserID    int    `json:"userId" gorm:"index;not null;"`
	Role      string `json:"role" gorm:"size:32;not null;default:'editor';"`

	models.ModelTime
}

func (ProjectMember) TableName() string {
	return "consult_project_member"
}
