package model

import (
	"database/sql"

	"go-consult/common/models"
)

type Subscriber struct {
	ID             int          `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID      int          `json:"projectId" gorm:"uniqueIndex:uniq_subscriber;not null;"`
	Email          string       `json:"email" gorm:"size:128;uniqueIndex:uniq_subscriber;not null;"`
	Name           string       `json:"name" gorm:"size:255;"`
	Consented      bool         `json:"consented" gorm:"not null;default:false;"`
	ConfirmToken   string       `json:"-" gorm:"size:64;index;"`
	ConfirmedAt    sql.NullTime `json:"confirmedAt"`
	UnsubscribedAt sql.NullTime `json:"unsubscribedAt"`

	models.ModelTime
}

func (Subscriber) TableName() string {
	return "consult_subscriber"
}
