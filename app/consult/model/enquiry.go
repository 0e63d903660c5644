package model

import "go-consult/common/models"

const (
	EnquiryStatusNew      = "new"
	EnquiryStatusOpen     = "open"
	EnquiryStatusResolved = "resolved"
	EnquiryStatusSpam     = "spam"
)

type Enquiry struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID  int    `json:"projectId" gorm:"index;not null;"`
	Project    *Project `json:"project,omitempty"`
	Name       string `json:"name" gorm:"size:255;"`
	Email      string `json:"email" gorm:"size:128;index;"`
	Subject    string `json:"subject" gorm:"size:255;"`
	Body       string `json:"body" gorm:"type:text;"`
	Status     string `json:"status" gorm:"size:16;not null;default:'new';index;"`
	AssignedTo int    `json:"assignedTo" gorm:"index;default:0;"`
	Browser    string `json:"browser" gorm:"size:64;"`
	Platform   string `json:"platform" gorm:"size:64;"`
	ViaWebhook bool   `json:"viaWebhook" gorm:"not null;default:false;"`

	Replies []EnquiryReply `json:"replies" gorm:"foreignKey:EnquiryID"`

	models.ModelTime
}

func (Enquiry) TableName() string {
	return "consult_enquiry"
}

type EnquiryReply struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	EnquiryID int    `json:"enquiryId" gorm:"index;not null;"`
	Body      string `json:"body" gorm:"type:text;"`
	Sent      bool   `json:"sent" gorm:"not null;default:false;"`

	models.ModelTime
	models.ControlBy
}

func (EnquiryReply) TableName() string {
	return "consult_enquiry_reply"
}
