package model

import "go-consult/common/models"

type SysUser struct {
	UserID   int    `json:"userId" gorm:"primaryKey;autoIncrement;column:user_id"`
	Username string `json:"username" gorm:"size:64;uniqueIndex;not null;"`
	Password string `json:"-" gorm:"size:128;not null;"`
	Name     string `json:"name" gorm:"size:128;"`
	Email    string `json:"email" gorm:"size:128;"`
	RoleID   int    `json:"roleId" gorm:"not null;default:0;"`
	Status   string `json:"status" gorm:"size:4;not null;default:'1';"`

	models.ModelTime
	models.ControlBy
}

func (SysUser) TableName() string {
	return "sys_user"
}

type SysRole struct {
	RoleID    int    `json:"roleId" gorm:"primaryKey;autoIncrement;column:role_id"`
	RoleName  string `json:"roleName" gorm:"size:128;"`
	RoleKey   string `json:"roleKey" gorm:"size:128;uniqueIndex;"`
	DataScope string `json:"dataScope" gorm:"size:8;default:'1';"`

	models.ModelTime
	models.ControlBy
}

func (SysRole) TableName() string {
	return "sys_role"
}
