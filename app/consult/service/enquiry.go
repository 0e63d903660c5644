package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/actions"
	"go-consult/common/gormscope"
	common "go-consult/common/models"
	"go-consult/common/log"
)

type SubmitEnquiryReq struct {
	ProjectID int    `json:"projectId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`

	Browser  string `json:"-"`
	Platform string `json:"-"`
}

// SubmitEnquiry files a public enquiry and notifies the project contact.
// The notification is best effort; a mailer failure never loses the enquiry.
func SubmitEnquiry(ctx context.Context, req SubmitEnquiryReq) (model.Enquiry, error) {
	e := model.Enquiry{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Body:      req.Body,
		Status:    model.EnquiryStatusNew,
		Browser:   req.Browser,
		Platform:  req.Platform,
	}
	err := log.WithTracer(ctx, PackageName, "submit enquiry", func(ctx context.Context) error {
		var project model.Project
		if err := consult.GormDB.WithContext(ctx).
			Where("id = ? and public = ?", req.ProjectID, true).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			consult.Logger().WithContext(ctx).Error("submit enquiry: load project: ", err.Error())
			return err
		}
		if err := consult.GormDB.WithContext(ctx).Create(&e).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("submit enquiry: ", err.Error())
			return err
		}
		enquiriesCreated.Add(ctx, 1)
		Broadcast(Event{Type: EventEnquiryCreated, ProjectID: e.ProjectID, ID: e.ID})
		if project.ContactEmail != "" {
			if err := SendMail(ctx, Mail{
				To:      project.ContactEmail,
				Subject: "New enquiry: " + e.Subject,
				Body:    "From: " + e.Name + " <" + e.Email + ">\n\n" + e.Body,
			}); err != nil {
				consult.Logger().WithContext(ctx).Error("enquiry notification: ", err.Error())
			}
		}
		return nil
	})
	return e, err
}

type InboundEmailReq struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// IngestInboundEmail turns a provider webhook callback into an enquiry.
// The project is resolved from the recipient's plus-address slug
// (team+<slug>@...); unresolvable mail is dropped with a warning.
func IngestInboundEmail(ctx context.Context, req InboundEmailReq) error {
	return log.WithTracer(ctx, PackageName, "inbound email", func(ctx context.Context) error {
		slug := plusAddressSlug(req.To)
		if slug == "" {
			consult.Logger().WithContext(ctx).Warnf("inbound mail to %q has no project slug, dropped", req.To)
			return nil
		}
		var project model.Project
		err := consult.GormDB.WithContext(ctx).
			Where("slug = ?", slug).
			First(&project).Error
		if err != nil {
			consult.Logger().WithContext(ctx).Warnf("inbound mail for unknown project %q, dropped", slug)
			return nil
		}
		e := model.Enquiry{
			ProjectID:  project.ID,
			Name:       req.Name,
			Email:      req.From,
			Subject:    req.Subject,
			Body:       req.Text,
			Status:     model.EnquiryStatusNew,
			ViaWebhook: true,
		}
		if err := consult.GormDB.WithContext(ctx).Create(&e).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("inbound email: ", err.Error())
			return err
		}
		enquiriesCreated.Add(ctx, 1)
		Broadcast(Event{Type: EventEnquiryCreated, ProjectID: e.ProjectID, ID: e.ID})
		return nil
	})
}

// plusAddressSlug extracts "riverside" from "team+riverside@example.org".
func plusAddressSlug(addr string) string {
	var plus, at = -1, -1
	for i, r := range addr {
		switch r {
		case '+':
			if plus < 0 {
				plus = i
			}
		case '@':
			at = i
		}
	}
	if plus < 0 || at < 0 || plus+1 >= at {
		return ""
	}
	return addr[plus+1 : at]
}

type SearchEnquiriesReq struct {
	ProjectID int    `json:"projectId"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	End       string `json:"end"`

	Pagination
}

func SearchEnquiries(ctx context.Context, req SearchEnquiriesReq) ([]model.Enquiry, int64, error) {
	var (
		count     int64
		enquiries = make([]model.Enquiry, 0, req.GetPageSize())
	)
	db := consult.GormDB.WithContext(ctx).
		Model(&model.Enquiry{}).
		Scopes(
			actions.ProjectPermission(ctx, model.Enquiry{}.TableName()),
			gormscope.Paginate(&req.Pagination),
			gormscope.CreateDateRange(req.Start, req.End, model.Enquiry{}.TableName()),
		)
	if req.ProjectID > 0 {
		db = db.Where("project_id = ?", req.ProjectID)
	}
	if req.Status != "" {
		db = db.Where("status = ?", req.Status)
	}
	db = db.Order("created_at desc").Find(&enquiries)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("search enquiries: ", err.Error())
		return nil, 0, err
	}
	db = db.Limit(-1).Offset(-1).Count(&count)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("count enquiries: ", err.Error())
		return nil, 0, err
	}
	return enquiries, count, nil
}

type GetEnquiryDetailReq struct {
	ID int `form:"id"`
}

func GetEnquiryDetail(ctx context.Context, req GetEnquiryDetailReq) (model.Enquiry, error) {
	var e model.Enquiry
	err := consult.GormDB.WithContext(ctx).
		Preload("Replies").
		Scopes(actions.ProjectPermission(ctx, model.Enquiry{}.TableName())).
		Where("id = ?", req.ID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e, ErrNotFound
		}
		consult.Logger().WithContext(ctx).Error("get enquiry: ", err.Error())
	}
	return e, err
}

type SetEnquiryStatusReq struct {
	ID         int    `json:"id"`
	Status     string `json:"status"`
	AssignedTo int    `json:"assignedTo"`

	common.ControlBy
}

func SetEnquiryStatus(ctx context.Context, req SetEnquiryStatusReq) error {
	switch req.Status {
	case model.EnquiryStatusNew, model.EnquiryStatusOpen,
		model.EnquiryStatusResolved, model.EnquiryStatusSpam:
	default:
		return errors.New("unknown enquiry status: " + req.Status)
	}
	err := consult.GormDB.WithContext(ctx).
		Model(&model.Enquiry{}).
		Scopes(actions.ProjectPermission(ctx, model.Enquiry{}.TableName())).
		Where("id = ?", req.ID).
		Updates(map[string]any{"status": req.Status, "assigned_to": req.AssignedTo}).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("set enquiry status: ", err.Error())
	}
	return err
}

type ReplyEnquiryReq struct {
	ID   int    `json:"id"`
	Body string `json:"body"`

	common.ControlBy
}

// ReplyEnquiry records the reply and emails it to the submitter. The row is
// kept even when sending fails, with Sent=false, so the reply can be retried.
func ReplyEnquiry(ctx context.Context, req ReplyEnquiryReq) (model.EnquiryReply, error) {
	var reply model.EnquiryReply
	err := log.WithTracer(ctx, PackageName, "reply enquiry", func(ctx context.Context) error {
		e, err := GetEnquiryDetail(ctx, GetEnquiryDetailReq{ID: req.ID})
		if err != nil {
			return err
		}
		reply = model.EnquiryReply{
			EnquiryID: e.ID,
			Body:      req.Body,
			ControlBy: req.ControlBy,
		}
		if err := consult.GormDB.WithContext(ctx).Create(&reply).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("create reply: ", err.Error())
			return err
		}
		if e.Email == "" {
			return nil
		}
		if err := SendMail(ctx, Mail{
			To:      e.Email,
			ToName:  e.Name,
			Subject: "Re: " + e.Subject,
			Body:    req.Body,
		}); err != nil {
			consult.Logger().WithContext(ctx).Warn("reply mail: ", err.Error())
			return nil
		}
		reply.Sent = true
		if err := consult.GormDB.WithContext(ctx).
			Model(&model.EnquiryReply{}).
			Where("id = ?", reply.ID).
			Update("sent", true).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("mark reply sent: ", err.Error())
		}
		if e.Status == model.EnquiryStatusNew {
			if err := consult.GormDB.WithContext(ctx).
				Model(&model.Enquiry{}).
				Where("id = ?", e.ID).
				Update("status", model.EnquiryStatusOpen).Error; err != nil {
				consult.Logger().WithContext(ctx).Error("bump enquiry status: ", err.Error())
			}
		}
		return nil
	})
	return reply, err
}
