package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

func SearchStakeholders(c *gin.Context) {
	var req service.SearchStakeholdersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	resp, total, err := service.SearchStakeholders(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "search failed")
		return
	}
	response.PageOK(c, resp, int(total), req.GetPageIndex(), req.GetPageSize(), "ok")
}

func CreateStakeholder(c *gin.Context) {
	var req service.CreateStakeholderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}

	req.SetCreateBy(user.GetUserId(c))

	stakeholder, err := service.CreateStakeholder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, stakeholder, "created")
}

func UpdateStakeholder(c *gin.Context) {
	var req service.UpdateStakeholderReq
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

	if err := service.UpdateStakeholder(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "updated")
}

func DeleteStakeholder(c *gin.Context) {
	req := service.DeleteStakeholderReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	if err := service.DeleteStakeholder(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "delete failed")
		return
	}
	response.OK(c, gin.H{}, "deleted")
}

func DetectStakeholders(c *gin.Context) {
	var req service.DetectStakeholdersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}

	req.SetCreateBy(user.GetUserId(c))

	resp, err := service.DetectStakeholders(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "detection failed")
		return
	}
	response.OK(c, resp, "ok")
}

// ImportCouncillors takes a multipart workbook upload plus councilCode and
// councilName form fields.
func ImportCouncillors(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, 500, err, "a workbook file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "open upload failed")
		return
	}
	defer file.Close()
	req := service.ImportCouncillorsReq{
		CouncilCode: c.PostForm("councilCode"),
		CouncilName: c.PostForm("councilName"),
		File:        file,
	}
	if req.CouncilCode == "" {
		response.Error(c, 200, nil, "councilCode is required")
		return
	}

	req.SetCreateBy(user.GetUserId(c))

	imported, err := service.ImportCouncillors(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "import failed")
		return
	}
	response.OK(c, gin.H{"imported": imported}, "imported "+strconv.Itoa(imported)+" councillors")
}
