package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
)

type formQuestion struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

var formQuestionKinds = map[string]struct{}{
	"text":     {},
	"choice":   {},
	"multiple": {},
	"rating":   {},
}

func validateQuestions(raw json.RawMessage) error {
	var questions []formQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return errors.New("questions must be a JSON array")
	}
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if q.ID == "" || q.Label == "" {
			return errors.New("every question needs an id and a label")
		}
		if _, ok := formQuestionKinds[q.Kind]; !ok {
			return errors.New("unknown question kind: " + q.Kind)
		}
		if (q.Kind == "choice" || q.Kind == "multiple") && len(q.Options) == 0 {
			return errors.New("choice questions need options")
		}
		if _, dup := seen[q.ID]; dup {
			return errors.New("duplicate question id: " + q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

type UpsertFeedbackFormReq struct {
	ProjectID int             `json:"projectId"`
	Questions json.RawMessage `json:"questions"`

	UserID int `json:"-"`
}

// UpsertFeedbackForm replaces the question set for a project. Each project
// has at most one form.
func UpsertFeedbackForm(ctx context.Context, req UpsertFeedbackFormReq) (model.FeedbackForm, error) {
	form := model.FeedbackForm{ProjectID: req.ProjectID}
	if err := validateQuestions(req.Questions); err != nil {
		return form, err
	}
	form.Questions = string(req.Questions)
	form.SetCreateBy(req.UserID)
	form.SetUpdateBy(req.UserID)
	err := consult.GormDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"questions", "update_by", "updated_at"}),
		}).
		Create(&form).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("upsert feedback form: ", err.Error())
		return form, err
	}
	return form, nil
}

type GetFeedbackFormReq struct {
	ProjectID int `form:"projectId"`
}

// GetFeedbackForm returns the project's form, or an empty question set when
// none has been configured yet.
func GetFeedbackForm(ctx context.Context, req GetFeedbackFormReq) (model.FeedbackForm, error) {
	var form model.FeedbackForm
	err := consult.GormDB.WithContext(ctx).
		Where("project_id = ?", req.ProjectID).
		First(&form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FeedbackForm{ProjectID: req.ProjectID, Questions: "[]"}, nil
	}
	if err != nil {
		consult.Logger().WithContext(ctx).Error("get feedback form: ", err.Error())
		return form, err
	}
	return form, nil
}

// AnswerCounts tallies, per question id, how many approved pins answered it.
func AnswerCounts(ctx context.Context, projectID int) (map[string]int, error) {
	pins := make([]model.PublicPin, 0, 64)
	err := consult.GormDB.WithContext(ctx).
		Select("answers").
		Where("project_id = ? and status = ?", projectID, model.PinStatusApproved).
		Find(&pins).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("answer counts: ", err.Error())
		return nil, err
	}
	counts := make(map[string]int)
	for _, pin := range pins {
		var answers map[string]json.RawMessage
		if err := json.Unmarshal([]byte(pin.Answers), &answers); err != nil {
			continue
		}
		for id := range answers {
			counts[id]++
		}
	}
	return counts, nil
}
