package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

func UpsertFeedbackForm(c *gin.Context) {
	var req service.UpsertFeedbackFormReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}

	req.UserID = user.GetUserId(c)

	form, err := service.UpsertFeedbackForm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, form, "saved")
}

// GetFeedbackForm serves both the dashboard and the public pin form.
func GetFeedbackForm(c *gin.Context) {
	req := service.GetFeedbackFormReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}
	form, err := service.GetFeedbackForm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, form, "ok")
}

func GetAnswerCounts(c *gin.Context) {
	req := service.GetFeedbackFormReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}
	counts, err := service.AnswerCounts(c.Request.Context(), req.ProjectID)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, counts, "ok")
}
