package model

import "go-consult/common/models"

// FeedbackForm holds the question definition a project's pins answer.
// Questions is a JSON document: an ordered array of
// {id, label, kind, options, required}.
type FeedbackForm struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID int    `json:"projectId" gorm:"uniqueIndex;not null;"`
	Questions string `json:"questions" gorm:"type:text;not null;default:'[]';"`

	models.ModelTime
	models.ControlBy
}

func (FeedbackForm) TableName() string {
	return "consult_feedback_form"
}
