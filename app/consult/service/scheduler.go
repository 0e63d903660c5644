package service

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/log"
)

// StartScheduler wires the background jobs and starts the cron loop.
// Schedules are fixed: detection and analysis run nightly, the subscriber
// digest goes out Monday mornings.
func StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("15 2 * * *", redetectOpenProjects); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("45 3 * * *", refreshAnalyses); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("0 8 * * 1", sendWeeklyDigests); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func openProjects(ctx context.Context) ([]model.Project, error) {
	projects := make([]model.Project, 0, 16)
	err := consult.GormDB.WithContext(ctx).
		Where("status = ?", model.ProjectStatusOpen).
		Find(&projects).Error
	return projects, err
}

// redetectOpenProjects re-runs stakeholder detection for every open project,
// picking up by-elections and boundary changes.
func redetectOpenProjects() {
	_ = log.WithTracer(context.Background(), PackageName, "nightly detection", func(ctx context.Context) error {
		projects, err := openProjects(ctx)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("nightly detection: list projects: ", err.Error())
			return err
		}
		for _, project := range projects {
			if _, err := DetectStakeholders(ctx, DetectStakeholdersReq{ProjectID: project.ID}); err != nil {
				consult.Logger().WithContext(ctx).
					Warnf("nightly detection: project %d: %s", project.ID, err.Error())
			}
		}
		return nil
	})
}

// refreshAnalyses reruns the AI read-out for open projects. Unchanged
// corpora are cache hits and cost nothing.
func refreshAnalyses() {
	_ = log.WithTracer(context.Background(), PackageName, "nightly analysis", func(ctx context.Context) error {
		projects, err := openProjects(ctx)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("nightly analysis: list projects: ", err.Error())
			return err
		}
		for _, project := range projects {
			if _, err := RunAnalysis(ctx, RunAnalysisReq{ProjectID: project.ID}); err != nil {
				consult.Logger().WithContext(ctx).
					Warnf("nightly analysis: project %d: %s", project.ID, err.Error())
			}
		}
		return nil
	})
}

// sendWeeklyDigests mails each open project's list a short activity note.
// Projects with no new activity are skipped.
func sendWeeklyDigests() {
	_ = log.WithTracer(context.Background(), PackageName, "weekly digest", func(ctx context.Context) error {
		projects, err := openProjects(ctx)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("weekly digest: list projects: ", err.Error())
			return err
		}
		since := time.Now().AddDate(0, 0, -7)
		for _, project := range projects {
			var pins, enquiries int64
			if err := consult.GormDB.WithContext(ctx).Model(&model.PublicPin{}).
				Where("project_id = ? and status = ? and created_at > ?",
					project.ID, model.PinStatusApproved, since).
				Count(&pins).Error; err != nil {
				consult.Logger().WithContext(ctx).Warn("weekly digest: count pins: ", err.Error())
				continue
			}
			if err := consult.GormDB.WithContext(ctx).Model(&model.Enquiry{}).
				Where("project_id = ? and created_at > ?", project.ID, since).
				Count(&enquiries).Error; err != nil {
				consult.Logger().WithContext(ctx).Warn("weekly digest: count enquiries: ", err.Error())
				continue
			}
			if pins == 0 && enquiries == 0 {
				continue
			}
			body := "This week on " + project.Name + ": " +
				strconv.FormatInt(pins, 10) + " new comments on the map and " +
				strconv.FormatInt(enquiries, 10) + " enquiries. " +
				"Visit the project page to see what your neighbours are saying."
			if _, err := SendProjectUpdate(ctx, SendProjectUpdateReq{
				ProjectID: project.ID,
				Subject:   "Weekly update: " + project.Name,
				Body:      body,
			}); err != nil {
				consult.Logger().WithContext(ctx).
					Warnf("weekly digest: project %d: %s", project.ID, err.Error())
			}
		}
		return nil
	})
}
