package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

// SubmitPin is the public map feedback endpoint.
func SubmitPin(c *gin.Context) {
	var req service.SubmitPinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	pin, err := service.SubmitPin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{"id": pin.ID}, "thanks for your feedback")
}

// ListPublicPins feeds the public map widget with approved pins.
func ListPublicPins(c *gin.Context) {
	req := service.ListPublicPinsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}
	pins, err := service.ListPublicPins(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, pins, "ok")
}

// ReactToPin lets visitors agree or disagree with an approved pin.
func ReactToPin(c *gin.Context) {
	var req service.ReactToPinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	if err := service.ReactToPin(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "recorded")
}

func SearchPins(c *gin.Context) {
	var req service.SearchPinsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	resp, total, err := service.SearchPins(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "search failed")
		return
	}
	response.PageOK(c, resp, int(total), req.GetPageIndex(), req.GetPageSize(), "ok")
}

func ModeratePin(c *gin.Context) {
	var req service.ModeratePinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	if err := service.ModeratePin(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "updated")
}

func DeletePin(c *gin.Context) {
	req := service.DeletePinReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	if err := service.DeletePin(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "delete failed")
		return
	}
	response.OK(c, gin.H{}, "deleted")
}
