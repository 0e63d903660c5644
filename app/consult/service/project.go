package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/actions"
	"go-consult/common/gormscope"
	common "go-consult/common/models"
	"go-consult/common/log"
)

type CreateProjectReq struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	ContactEmail string  `json:"contactEmail"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Zoom         float64 `json:"zoom"`

	common.ControlBy
}

type CreateProjectResp struct {
	ID int `json:"id"`
}

func CreateProject(ctx context.Context, req CreateProjectReq) (CreateProjectResp, error) {
	var resp CreateProjectResp
	err := log.WithTracer(ctx, PackageName, "create project", func(ctx context.Context) error {
		slug := strings.ToLower(strings.TrimSpace(req.Slug))
		if slug == "" {
			slug = strings.ToLower(strings.Join(strings.Fields(req.Name), "-"))
		}
		project := model.Project{
			Name:         req.Name,
			Slug:         slug,
			Description:  req.Description,
			Status:       model.ProjectStatusDraft,
			ContactEmail: req.ContactEmail,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Zoom:         req.Zoom,
			ControlBy:    req.ControlBy,
		}
		return consult.GormDB.Transaction(func(tx *gorm.DB) error {
			if err := tx.WithContext(ctx).Create(&project).Error; err != nil {
				consult.Logger().WithContext(ctx).Error("create project: ", err.Error())
				return err
			}
			member := model.ProjectMember{
				ProjectID: project.ID,
				UserID:    req.CreateBy,
				Role:      "owner",
			}
			if err := tx.WithContext(ctx).Create(&member).Error; err != nil {
				consult.Logger().WithContext(ctx).Error("create project owner: ", err.Error())
				return err
			}
			resp.ID = project.ID
			return nil
		})
	})
	return resp, err
}

type UpdateProjectReq struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Public       *bool   `json:"public"`
	ContactEmail string  `json:"contactEmail"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Zoom         float64 `json:"zoom"`

	common.ControlBy
}

func UpdateProject(ctx context.Context, req UpdateProjectReq) error {
	return log.WithTracer(ctx, PackageName, "update project", func(ctx context.Context) error {
		switch req.Status {
		case "", model.ProjectStatusDraft, model.ProjectStatusOpen,
			model.ProjectStatusClosed, model.ProjectStatusArchived:
		default:
			return errors.New("unknown project status: " + req.Status)
		}
		updates := map[string]any{
			"name":          req.Name,
			"description":   req.Description,
			"contact_email": req.ContactEmail,
			"latitude":      req.Latitude,
			"longitude":     req.Longitude,
			"zoom":          req.Zoom,
			"update_by":     req.UpdateBy,
		}
		if req.Status != "" {
			updates["status"] = req.Status
		}
		if req.Public != nil {
			updates["public"] = *req.Public
		}
		err := consult.GormDB.WithContext(ctx).
			Model(&model.Project{}).
			Scopes(actions.OwnProjects(ctx)).
			Where("id = ?", req.ID).
			Updates(updates).Error
		if err != nil {
			consult.Logger().WithContext(ctx).Error("update project: ", err.Error())
		}
		return err
	})
}

type DeleteProjectReq struct {
	ID int `form:"id"`

	common.ControlBy
}

func DeleteProject(ctx context.Context, req DeleteProjectReq) error {
	return log.WithTracer(ctx, PackageName, "delete project", func(ctx context.Context) error {
		err := consult.GormDB.WithContext(ctx).
			Scopes(actions.OwnProjects(ctx)).
			Where("id = ?", req.ID).
			Delete(&model.Project{}).Error
		if err != nil {
			consult.Logger().WithContext(ctx).Error("delete project: ", err.Error())
			return err
		}
		consult.Logger().WithContext(ctx).Warnf("project %d deleted by %d", req.ID, req.UpdateBy)
		return nil
	})
}

type SearchProjectsReq struct {
	Name   string `json:"name"`
	Status string `json:"status"`

	Pagination
}

type SearchProjectsRespItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Status    string `json:"status"`
	Public    bool   `json:"public"`
	CreatedAt string `json:"createdAt"`
}

func SearchProjects(ctx context.Context, req SearchProjectsReq) ([]SearchProjectsRespItem, int64, error) {
	var (
		count    int64
		projects = make([]model.Project, 0, req.GetPageSize())
	)
	db := consult.GormDB.WithContext(ctx).
		Model(&model.Project{}).
		Scopes(
			actions.OwnProjects(ctx),
			gormscope.Paginate(&req.Pagination),
		)
	if req.Name != "" {
		db = db.Where("name like ?", "%"+req.Name+"%")
	}
	if req.Status != "" {
		db = db.Where("status = ?", req.Status)
	}
	db = db.Order("created_at desc").Find(&projects)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("search projects: ", err.Error())
		return nil, 0, err
	}
	db = db.Limit(-1).Offset(-1).Count(&count)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("count projects: ", err.Error())
		return nil, 0, err
	}
	items := make([]SearchProjectsRespItem, len(projects))
	for i, p := range projects {
		items[i] = SearchProjectsRespItem{
			ID:        p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Status:    p.Status,
			Public:    p.Public,
			CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return items, count, nil
}

type GetProjectDetailReq struct {
	ID int `form:"id"`
}

func GetProjectDetail(ctx context.Context, req GetProjectDetailReq) (model.Project, error) {
	var project model.Project
	err := consult.GormDB.WithContext(ctx).
		Preload("Members").
		Scopes(actions.OwnProjects(ctx)).
		Where("id = ?", req.ID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return project, ErrNotFound
		}
		consult.Logger().WithContext(ctx).Error("get project: ", err.Error())
		return project, err
	}
	return project, nil
}

type ProjectDashboardResp struct {
	Pins          int64 `json:"pins"`
	PendingPins   int64 `json:"pendingPins"`
	Enquiries     int64 `json:"enquiries"`
	OpenEnquiries int64 `json:"openEnquiries"`
	Stakeholders  int64 `json:"stakeholders"`
	Subscribers   int64 `json:"subscribers"`
}

// GetProjectDashboard fetches the independent dashboard counts concurrently.
// No ordering is guaranteed between the reads.
func GetProjectDashboard(ctx context.Context, req GetProjectDetailReq) (ProjectDashboardResp, error) {
	var resp ProjectDashboardResp
	err := log.WithTracer(ctx, PackageName, "project dashboard", func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		count := func(dst *int64, m any, query string, args ...any) func() error {
			return func() error {
				return consult.GormDB.WithContext(ctx).Model(m).Where(query, args...).Count(dst).Error
			}
		}
		g.Go(count(&resp.Pins, &model.PublicPin{}, "project_id = ?", req.ID))
		g.Go(count(&resp.PendingPins, &model.PublicPin{}, "project_id = ? and status = ?", req.ID, model.PinStatusPending))
		g.Go(count(&resp.Enquiries, &model.Enquiry{}, "project_id = ?", req.ID))
		g.Go(count(&resp.OpenEnquiries, &model.Enquiry{}, "project_id = ? and status in ?", req.ID, []string{model.EnquiryStatusNew, model.EnquiryStatusOpen}))
		g.Go(count(&resp.Stakeholders, &model.Stakeholder{}, "project_id = ?", req.ID))
		g.Go(count(&resp.Subscribers, &model.Subscriber{}, "project_id = ? and unsubscribed_at is null", req.ID))
		if err := g.Wait(); err != nil {
			consult.Logger().WithContext(ctx).Error("dashboard counts: ", err.Error())
			return err
		}
		return nil
	})
	return resp, err
}
