package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/actions"
	"go-consult/common/gormscope"
	"go-consult/common/log"
)

type SubmitPinReq struct {
	ProjectID int             `json:"projectId"`
	Kind      string          `json:"kind"`
	Geometry  json.RawMessage `json:"geometry"`
	Comment   string          `json:"comment"`
	Email     string          `json:"email"`
	Answers   json.RawMessage `json:"answers"`
	PhotoKey  string          `json:"photoKey"`
}

func validateGeometry(kind string, geometry json.RawMessage) error {
	switch kind {
	case model.PinKindPoint:
		var p [2]float64
		if err := json.Unmarshal(geometry, &p); err != nil {
			return errors.New("point geometry must be [lng, lat]")
		}
	case model.PinKindLine:
		var l [][2]float64
		if err := json.Unmarshal(geometry, &l); err != nil || len(l) < 2 {
			return errors.New("line geometry must be at least two [lng, lat] positions")
		}
	case model.PinKindPolygon:
		var rings [][][2]float64
		if err := json.Unmarshal(geometry, &rings); err != nil || len(rings) == 0 || len(rings[0]) < 4 {
			return errors.New("polygon geometry must be a closed ring of at least four positions")
		}
	default:
		return errors.New("unknown geometry kind: " + kind)
	}
	return nil
}

// SubmitPin files a public map feedback item against an open project.
func SubmitPin(ctx context.Context, req SubmitPinReq) (model.PublicPin, error) {
	var pin model.PublicPin
	err := log.WithTracer(ctx, PackageName, "submit pin", func(ctx context.Context) error {
		if err := validateGeometry(req.Kind, req.Geometry); err != nil {
			return err
		}
		var project model.Project
		if err := consult.GormDB.WithContext(ctx).
			Where("id = ? and public = ? and status = ?", req.ProjectID, true, model.ProjectStatusOpen).
			First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			consult.Logger().WithContext(ctx).Error("submit pin: load project: ", err.Error())
			return err
		}
		answers := "{}"
		if len(req.Answers) > 0 {
			if !json.Valid(req.Answers) {
				return errors.New("answers must be a JSON document")
			}
			answers = string(req.Answers)
		}
		pin = model.PublicPin{
			ProjectID: req.ProjectID,
			Kind:      req.Kind,
			Geometry:  string(req.Geometry),
			Comment:   req.Comment,
			Email:     req.Email,
			Answers:   answers,
			PhotoKey:  req.PhotoKey,
			Status:    model.PinStatusPending,
		}
		if err := consult.GormDB.WithContext(ctx).Create(&pin).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("submit pin: ", err.Error())
			return err
		}
		pinsCreated.Add(ctx, 1)
		Broadcast(Event{Type: EventPinCreated, ProjectID: pin.ProjectID, ID: pin.ID})
		return nil
	})
	return pin, err
}

type ListPublicPinsReq struct {
	ProjectID int `form:"projectId"`
}

// ListPublicPins returns approved pins only; it backs the public map widget.
func ListPublicPins(ctx context.Context, req ListPublicPinsReq) ([]model.PublicPin, error) {
	pins := make([]model.PublicPin, 0, 64)
	err := consult.GormDB.WithContext(ctx).
		Where("project_id = ? and status = ?", req.ProjectID, model.PinStatusApproved).
		Order("created_at desc").
		Find(&pins).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("list public pins: ", err.Error())
		return nil, err
	}
	return pins, nil
}

type SearchPinsReq struct {
	ProjectID int    `json:"projectId"`
	Status    string `json:"status"`
	Kind      string `json:"kind"`
	Start     string `json:"start"`
	End       string `json:"end"`

	Pagination
}

func SearchPins(ctx context.Context, req SearchPinsReq) ([]model.PublicPin, int64, error) {
	var (
		count int64
		pins  = make([]model.PublicPin, 0, req.GetPageSize())
	)
	db := consult.GormDB.WithContext(ctx).
		Model(&model.PublicPin{}).
		Scopes(
			actions.ProjectPermission(ctx, model.PublicPin{}.TableName()),
			gormscope.Paginate(&req.Pagination),
			gormscope.CreateDateRange(req.Start, req.End, model.PublicPin{}.TableName()),
		)
	if req.ProjectID > 0 {
		db = db.Where("project_id = ?", req.ProjectID)
	}
	if req.Status != "" {
		db = db.Where("status = ?", req.Status)
	}
	if req.Kind != "" {
		db = db.Where("kind = ?", req.Kind)
	}
	db = db.Order("created_at desc").Find(&pins)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("search pins: ", err.Error())
		return nil, 0, err
	}
	db = db.Limit(-1).Offset(-1).Count(&count)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("count pins: ", err.Error())
		return nil, 0, err
	}
	return pins, count, nil
}

type ModeratePinReq struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

func ModeratePin(ctx context.Context, req ModeratePinReq) error {
	switch req.Status {
	case model.PinStatusPending, model.PinStatusApproved, model.PinStatusHidden:
	default:
		return errors.New("unknown pin status: " + req.Status)
	}
	err := consult.GormDB.WithContext(ctx).
		Model(&model.PublicPin{}).
		Scopes(actions.ProjectPermission(ctx, model.PublicPin{}.TableName())).
		Where("id = ?", req.ID).
		Update("status", req.Status).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("moderate pin: ", err.Error())
	}
	return err
}

type DeletePinReq struct {
	ID int `form:"id"`
}

func DeletePin(ctx context.Context, req DeletePinReq) error {
	err := consult.GormDB.WithContext(ctx).
		Scopes(actions.ProjectPermission(ctx, model.PublicPin{}.TableName())).
		Where("id = ?", req.ID).
		Delete(&model.PublicPin{}).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("delete pin: ", err.Error())
	}
	return err
}

type ReactToPinReq struct {
	ID    int  `json:"id"`
	Agree bool `json:"agree"`
}

// ReactToPin bumps the agree or disagree counter of an approved pin.
func ReactToPin(ctx context.Context, req ReactToPinReq) error {
	column := "disagrees"
	if req.Agree {
		column = "agrees"
	}
	db := consult.GormDB.WithContext(ctx).
		Model(&model.PublicPin{}).
		Where("id = ? and status = ?", req.ID, model.PinStatusApproved).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if db.Error != nil {
		consult.Logger().WithContext(ctx).Error("react to pin: ", db.Error.Error())
		return db.Error
	}
	if db.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
