package service

import (
	"context"
	"errors"
	"mime/multipart"

	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/actions"
	"go-consult/common/gormscope"
	common "go-consult/common/models"
	"go-consult/common/log"
	"go-consult/common/util"
)

type CreateStakeholderReq struct {
	ProjectID    int    `json:"projectId"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`

	common.ControlBy
}

func CreateStakeholder(ctx context.Context, req CreateStakeholderReq) (model.Stakeholder, error) {
	s := model.Stakeholder{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Type:         req.Type,
		Organization: req.Organization,
		Role:         req.Role,
		Email:        req.Email,
		Phone:        req.Phone,
		Notes:        req.Notes,
		Source:       model.StakeholderSourceManual,
		ControlBy:    req.ControlBy,
	}
	if s.Type == "" {
		s.Type = model.StakeholderTypeOther
	}
	if err := consult.GormDB.WithContext(ctx).Create(&s).Error; err != nil {
		consult.Logger().WithContext(ctx).Error("create stakeholder: ", err.Error())
		return s, err
	}
	return s, nil
}

type UpdateStakeholderReq struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
	Contacted    *bool  `json:"contacted"`

	common.ControlBy
}

func UpdateStakeholder(ctx context.Context, req UpdateStakeholderReq) error {
	updates := map[string]any{
		"name":         req.Name,
		"type":         req.Type,
		"organization": req.Organization,
		"role":         req.Role,
		"email":        req.Email,
		"phone":        req.Phone,
		"notes":        req.Notes,
		"update_by":    req.UpdateBy,
	}
	if req.Contacted != nil {
		updates["contacted"] = *req.Contacted
	}
	err := consult.GormDB.WithContext(ctx).
		Model(&model.Stakeholder{}).
		Scopes(actions.ProjectPermission(ctx, model.Stakeholder{}.TableName())).
		Where("id = ?", req.ID).
		Updates(updates).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("update stakeholder: ", err.Error())
	}
	return err
}

type DeleteStakeholderReq struct {
	ID int `form:"id"`

	common.ControlBy
}

func DeleteStakeholder(ctx context.Context, req DeleteStakeholderReq) error {
	err := consult.GormDB.WithContext(ctx).
		Scopes(actions.ProjectPermission(ctx, model.Stakeholder{}.TableName())).
		Where("id = ?", req.ID).
		Delete(&model.Stakeholder{}).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("delete stakeholder: ", err.Error())
	}
	return err
}

type SearchStakeholdersReq struct {
	ProjectID int    `json:"projectId"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	Name      string `json:"name"`

	Pagination
}

func SearchStakeholders(ctx context.Context, req SearchStakeholdersReq) ([]model.Stakeholder, int64, error) {
	var (
		count        int64
		stakeholders = make([]model.Stakeholder, 0, req.GetPageSize())
	)
	db := consult.GormDB.WithContext(ctx).
		Model(&model.Stakeholder{}).
		Scopes(
			actions.ProjectPermission(ctx, model.Stakeholder{}.TableName()),
			gormscope.Paginate(&req.Pagination),
		)
	if req.ProjectID > 0 {
		db = db.Where("project_id = ?", req.ProjectID)
	}
	if req.Type != "" {
		db = db.Where("type = ?", req.Type)
	}
	if req.Source != "" {
		db = db.Where("source = ?", req.Source)
	}
	if req.Name != "" {
		db = db.Where("name like ?", "%"+req.Name+"%")
	}
	db = db.Order("created_at desc").Find(&stakeholders)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("search stakeholders: ", err.Error())
		return nil, 0, err
	}
	db = db.Limit(-1).Offset(-1).Count(&count)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("count stakeholders: ", err.Error())
		return nil, 0, err
	}
	return stakeholders, count, nil
}

type ImportCouncillorsReq struct {
	CouncilCode string
	CouncilName string
	File        multipart.File

	common.ControlBy
}

// ImportCouncillors replaces a council's councillor directory from an
// uploaded workbook with columns: ward, name, party, email.
func ImportCouncillors(ctx context.Context, req ImportCouncillorsReq) (int, error) {
	var imported int
	err := log.WithTracer(ctx, PackageName, "import councillors", func(ctx context.Context) error {
		rows, err := util.ReadExcelRows(req.File)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("read workbook: ", err.Error())
			return err
		}
		if len(rows) == 0 {
			return errors.New("workbook has no data rows")
		}
		councillors := make([]model.Councillor, 0, len(rows))
		for _, row := range rows {
			cell := func(i int) string {
				if i < len(row) {
					return row[i]
				}
				return ""
			}
			if cell(0) == "" || cell(1) == "" {
				continue
			}
			councillors = append(councillors, model.Councillor{
				CouncilCode: req.CouncilCode,
				CouncilName: req.CouncilName,
				Ward:        cell(0),
				Name:        cell(1),
				Party:       cell(2),
				Email:       cell(3),
				ControlBy:   req.ControlBy,
			})
		}
		return consult.GormDB.Transaction(func(tx *gorm.DB) error {
			if err := tx.WithContext(ctx).
				Where("council_code = ?", req.CouncilCode).
				Delete(&model.Councillor{}).Error; err != nil {
				return err
			}
			if len(councillors) == 0 {
				return nil
			}
			if err := tx.WithContext(ctx).Create(&councillors).Error; err != nil {
				return err
			}
			imported = len(councillors)
			return nil
		})
	})
	return imported, err
}
