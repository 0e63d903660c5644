package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

func SearchProjects(c *gin.Context) {
	var req service.SearchProjectsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	resp, total, err := service.SearchProjects(c.Request.Context(), req)
	if err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "search failed")
		return
	}
	response.PageOK(c, resp, int(total), req.GetPageIndex(), req.GetPageSize(), "ok")
}

func CreateProject(c *gin.Context) {
	var req service.CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}

	req.SetCreateBy(user.GetUserId(c))

	resp, err := service.CreateProject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, resp, "created")
}

func UpdateProject(c *gin.Context) {
	var req service.UpdateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}

	req.SetUpdateBy(user.GetUserId(c))

	if err := service.UpdateProject(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "updated")
}

func DeleteProject(c *gin.Context) {
	req := service.DeleteProjectReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}

	req.SetUpdateBy(user.GetUserId(c))

	if err := service.DeleteProject(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "delete failed")
		return
	}
	response.OK(c, gin.H{}, "deleted")
}

func GetProjectDetail(c *gin.Context) {
	req := service.GetProjectDetailReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	detail, err := service.GetProjectDetail(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, detail, "ok")
}

func GetProjectDashboard(c *gin.Context) {
	req := service.GetProjectDetailReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	dashboard, err := service.GetProjectDashboard(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, dashboard, "ok")
}
