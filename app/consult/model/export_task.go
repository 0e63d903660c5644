package model

import "go-consult/common/models"

type ExportTask struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   int    `json:"userId" gorm:"index;"`
	Type     string `json:"type"`
	Args     string `json:"args"`
	Status   string `json:"status" gorm:"size:16;index;"`
	FileName string `json:"fileName"`

	models.ModelTime
}

func (ExportTask) TableName() string {
	return "consult_export_task"
}
