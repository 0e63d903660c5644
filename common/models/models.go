package models

import (
	"time"

	"gorm.io/gorm"
)

type ModelTime struct {
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type ControlBy struct {
	CreateBy int `json:"createBy" gorm:"index"`
	UpdateBy int `json:"updateBy" gorm:"index"`
}

func (e *ControlBy) SetCreateBy(createBy int) {
	e.CreateBy = createBy
}

func (e *ControlBy) SetUpdateBy(updateBy int) {
	e.UpdateBy = updateBy
}
