package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

func RunAnalysis(c *gin.Context) {
	var req service.RunAnalysisReq
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

	run, err := service.RunAnalysis(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "analysis failed")
		return
	}
	response.OK(c, run, "ok")
}

func GetLatestAnalysis(c *gin.Context) {
	req := service.GetLatestAnalysisReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}
	run, err := service.GetLatestAnalysis(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "no analysis yet")
		return
	}
	response.OK(c, run, "ok")
}
