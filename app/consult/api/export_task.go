package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

func CreateExportTask(c *gin.Context) {
	var req service.CreateExportTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.Type == "" {
		response.Error(c, 200, nil, "type is required")
		return
	}

	req.UserID = user.GetUserId(c)

	task, err := service.CreateExportTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{"id": task.ID}, "export queued")
}

func SearchExportTask(c *gin.Context) {
	var req service.SearchExportTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	resp, total, err := service.SearchExportTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.PageOK(c, resp, int(total), req.GetPageIndex(), req.GetPageSize(), "ok")
}

func ExportTaskFile(c *gin.Context) {
	var req service.ExportTaskFileReq
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID == 0 {
		response.Error(c, 500, nil, "id is required")
		return
	}
	resp, err := service.ExportTaskFile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, resp, "ok")
}
