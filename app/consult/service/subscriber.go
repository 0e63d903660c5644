package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/actions"
	"go-consult/common/database"
	"go-consult/common/gormscope"
	"go-consult/common/log"
	"go-consult/common/util"
)

type SubscribeReq struct {
	ProjectID int    `json:"projectId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Consented bool   `json:"consented"`
}

// Subscribe registers an email against a public project's mailing list and
// sends a confirmation link. Re-subscribing a lapsed address issues a fresh
// token and clears the unsubscribe mark.
func Subscribe(ctx context.Context, req SubscribeReq) error {
	return log.WithTracer(ctx, PackageName, "subscribe", func(ctx context.Context) error {
		if !req.Consented {
			return errors.New("consent is required to join the mailing list")
		}
		if req.Email == "" {
			return errors.New("email is required")
		}
		var project model.Project
		if err := consult.GormDB.WithContext(ctx).
			Where("id = ? and public = ?", req.ProjectID, true).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			consult.Logger().WithContext(ctx).Error("subscribe: load project: ", err.Error())
			return err
		}
		token := uuid.NewString()
		var subscriber model.Subscriber
		err := consult.GormDB.WithContext(ctx).
			Where("project_id = ? and email = ?", req.ProjectID, req.Email).
			First(&subscriber).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			subscriber = model.Subscriber{
				ProjectID:    req.ProjectID,
				Email:        req.Email,
				Name:         req.Name,
				Consented:    true,
				ConfirmToken: token,
			}
			if err := consult.GormDB.WithContext(ctx).Create(&subscriber).Error; err != nil {
				consult.Logger().WithContext(ctx).Error("subscribe: ", err.Error())
				return err
			}
		case err != nil:
			consult.Logger().WithContext(ctx).Error("subscribe: ", err.Error())
			return err
		default:
			if subscriber.ConfirmedAt.Valid && !subscriber.UnsubscribedAt.Valid {
				// Already on the list; don't leak that via a distinct error.
				return nil
			}
			updates := map[string]any{
				"confirm_token":   token,
				"consented":       true,
				"unsubscribed_at": nil,
			}
			if req.Name != "" {
				updates["name"] = req.Name
			}
			if err := consult.GormDB.WithContext(ctx).
				Model(&subscriber).Updates(updates).Error; err != nil {
				consult.Logger().WithContext(ctx).Error("subscribe: refresh token: ", err.Error())
				return err
			}
		}
		mail := Mail{
			To:      req.Email,
			ToName:  req.Name,
			Subject: "Confirm your subscription to " + project.Name,
			Body: "Please confirm you want updates about " + project.Name +
				" by following the link in this message. Token: " + token,
		}
		mailCtx := log.WithNoCancel(ctx)
		log.SafeGo(func() {
			if err := SendMail(mailCtx, mail); err != nil {
				consult.Logger().WithContext(mailCtx).Warn("subscribe: confirmation mail: ", err.Error())
			}
		}, log.WithName("confirmation mail"))
		return nil
	})
}

type ConfirmSubscriptionReq struct {
	Token string `form:"token"`
}

func ConfirmSubscription(ctx context.Context, req ConfirmSubscriptionReq) error {
	if req.Token == "" {
		return ErrNotFound
	}
	db := consult.GormDB.WithContext(ctx).
		Model(&model.Subscriber{}).
		Where("confirm_token = ?", req.Token).
		Updates(map[string]any{
			"confirmed_at":  time.Now(),
			"confirm_token": "",
		})
	if db.Error != nil {
		consult.Logger().WithContext(ctx).Error("confirm subscription: ", db.Error.Error())
		return db.Error
	}
	if db.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type UnsubscribeReq struct {
	ProjectID int    `form:"projectId"`
	Email     string `form:"email"`
}

// Unsubscribe marks the address as lapsed. It succeeds silently for unknown
// addresses so the endpoint can't be used to probe the list.
func Unsubscribe(ctx context.Context, req UnsubscribeReq) error {
	err := consult.GormDB.WithContext(ctx).
		Model(&model.Subscriber{}).
		Where("project_id = ? and email = ?", req.ProjectID, req.Email).
		Update("unsubscribed_at", time.Now()).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("unsubscribe: ", err.Error())
	}
	return err
}

type SearchSubscribersReq struct {
	ProjectID int    `json:"projectId"`
	Confirmed *bool  `json:"confirmed"`
	Email     string `json:"email"`

	Pagination
}

type SearchSubscribersRespItem struct {
	ID             int    `json:"id"`
	ProjectID      int    `json:"projectId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ConfirmedAt    int64  `json:"confirmedAt"`
	UnsubscribedAt int64  `json:"unsubscribedAt"`
	CreatedAt      int64  `json:"createdAt"`
}

func SearchSubscribers(ctx context.Context, req SearchSubscribersReq) ([]SearchSubscribersRespItem, int64, error) {
	var (
		count       int64
		subscribers = make([]model.Subscriber, 0, req.GetPageSize())
	)
	db := consult.GormDB.WithContext(ctx).
		Model(&model.Subscriber{}).
		Scopes(
			actions.ProjectPermission(ctx, model.Subscriber{}.TableName()),
			gormscope.Paginate(&req.Pagination),
		)
	if req.ProjectID > 0 {
		db = db.Where("project_id = ?", req.ProjectID)
	}
	if req.Confirmed != nil {
		if *req.Confirmed {
			db = db.Where("confirmed_at is not null and unsubscribed_at is null")
		} else {
			db = db.Where("confirmed_at is null")
		}
	}
	if req.Email != "" {
		db = db.Where("email like ?", "%"+req.Email+"%")
	}
	db = db.Order("created_at desc").Find(&subscribers)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("search subscribers: ", err.Error())
		return nil, 0, err
	}
	db = db.Limit(-1).Offset(-1).Count(&count)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("count subscribers: ", err.Error())
		return nil, 0, err
	}
	items := util.Convert(subscribers, func(s model.Subscriber) SearchSubscribersRespItem {
		return SearchSubscribersRespItem{
			ID:             s.ID,
			ProjectID:      s.ProjectID,
			Email:          s.Email,
			Name:           s.Name,
			ConfirmedAt:    database.SqlNullTime2TimeStamp(s.ConfirmedAt),
			UnsubscribedAt: database.SqlNullTime2TimeStamp(s.UnsubscribedAt),
			CreatedAt:      s.CreatedAt.UnixMilli(),
		}
	})
	return items, count, nil
}

type SendProjectUpdateReq struct {
	ProjectID int    `json:"projectId"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendProjectUpdate mails every confirmed, still-subscribed address on the
// project's list. Individual send failures are logged and skipped.
func SendProjectUpdate(ctx context.Context, req SendProjectUpdateReq) (int, error) {
	var sent int
	err := log.WithTracer(ctx, PackageName, "send project update", func(ctx context.Context) error {
		if req.Subject == "" || req.Body == "" {
			return errors.New("subject and body are required")
		}
		subscribers := make([]model.Subscriber, 0, 64)
		err := consult.GormDB.WithContext(ctx).
			Where("project_id = ? and confirmed_at is not null and unsubscribed_at is null", req.ProjectID).
			Find(&subscribers).Error
		if err != nil {
			consult.Logger().WithContext(ctx).Error("send project update: ", err.Error())
			return err
		}
		for _, subscriber := range subscribers {
			mail := Mail{
				To:      subscriber.Email,
				ToName:  subscriber.Name,
				Subject: req.Subject,
				Body:    req.Body,
			}
			if err := SendMail(ctx, mail); err != nil {
				consult.Logger().WithContext(ctx).
					Warn("send project update: skip one recipient: ", err.Error())
				continue
			}
			sent++
		}
		return nil
	})
	return sent, err
}
