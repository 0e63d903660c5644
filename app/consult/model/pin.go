package model

import "go-consult/common/models"

const (
	PinKindPoint   = "point"
	PinKindLine    = "line"
	PinKindPolygon = "polygon"
)

const (
	PinStatusPending  = "pending"
	PinStatusApproved = "approved"
	PinStatusHidden   = "hidden"
)

// PublicPin is a piece of map-anchored feedback left by a site visitor.
// Geometry carries the GeoJSON coordinates array for the declared kind;
// Answers carries the feedback-form answers keyed by question id.
type PublicPin struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID int    `json:"projectId" gorm:"index;not null;"`
	Kind      string `json:"kind" gorm:"size:16;not null;default:'point';"`
	Geometry  string `json:"geometry" gorm:"type:text;not null;"`
	Comment   string `json:"comment" gorm:"type:text;"`
	Email     string `json:"email" gorm:"size:128;"`
	Answers   string `json:"answers" gorm:"type:text;"`
	PhotoKey  string `json:"photoKey" gorm:"size:64;"`
	Status    string `json:"status" gorm:"size:16;not null;default:'pending';index;"`
	Agrees    int    `json:"agrees" gorm:"not null;default:0;"`
	Disagrees int    `json:"disagrees" gorm:"not null;default:0;"`

	models.ModelTime
}

func (PublicPin) TableName() string {
	return "consult_public_pin"
}
