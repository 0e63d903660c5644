package model

import "go-consult/common/models"

const (
	StakeholderTypeMP            = "mp"
	StakeholderTypeCouncillor    = "councillor"
	StakeholderTypeParishCouncil = "parish_council"
	StakeholderTypeCommunity     = "community_group"
	StakeholderTypeOther         = "other"
)

const (
	StakeholderSourceManual = "manual"
	StakeholderSourceAuto   = "auto"
)

type Stakeholder struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID    int    `json:"projectId" gorm:"index;not null;"`
	Project      *Project `json:"project,omitempty"`
	Name         string `json:"name" gorm:"size:255;not null;default:'';"`
	Type         string `json:"type" gorm:"size:32;not null;default:'other';"`
	Organization string `json:"organization" gorm:"size:255;"`
	Role         string `json:"role" gorm:"size:128;"`
	Party        string `json:"party" gorm:"size:128;"`
	Area         string `json:"area" gorm:"size:255;"`
	Email        string `json:"email" gorm:"size:128;"`
	Phone        string `json:"phone" gorm:"size:32;"`
	Notes        string `json:"notes" gorm:"type:text;"`
	Source       string `json:"source" gorm:"size:16;not null;default:'manual';"`
	Contacted    bool   `json:"contacted" gorm:"not null;default:false;"`

	models.ModelTime
	models.ControlBy
}

func (Stakeholder) TableName() string {
	return "consult_stakeholder"
}

// Councillor is a row of the ward councillor directory detection matches
// against. Populated by Excel import per council.
type Councillor struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	CouncilCode string `json:"councilCode" gorm:"size:32;index;not null;"`
	CouncilName string `json:"councilName" gorm:"size:255;"`
	Ward        string `json:"ward" gorm:"size:255;not null;"`
	Name        string `json:"name" gorm:"size:255;not null;"`
	Party       string `json:"party" gorm:"size:128;"`
	Email       string `json:"email" gorm:"size:128;"`

	models.ModelTime
	models.ControlBy
}

func (Councillor) TableName() string {
	return "consult_councillor"
}
