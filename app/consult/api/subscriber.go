package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

// Subscribe is the public mailing list signup.
func Subscribe(c *gin.Context) {
	var req service.SubscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if err := service.Subscribe(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "check your inbox to confirm")
}

func ConfirmSubscription(c *gin.Context) {
	req := service.ConfirmSubscriptionReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if err := service.ConfirmSubscription(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "confirmation link is invalid or already used")
		return
	}
	response.OK(c, gin.H{}, "subscription confirmed")
}

func Unsubscribe(c *gin.Context) {
	req := service.UnsubscribeReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if err := service.Unsubscribe(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "unsubscribed")
}

func SearchSubscribers(c *gin.Context) {
	var req service.SearchSubscribersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	resp, total, err := service.SearchSubscribers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "search failed")
		return
	}
	response.PageOK(c, resp, int(total), req.GetPageIndex(), req.GetPageSize(), "ok")
}

func SendProjectUpdate(c *gin.Context) {
	var req service.SendProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ProjectID <= 0 {
		response.Error(c, 200, nil, "projectId is required")
		return
	}
	sent, err := service.SendProjectUpdate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{"sent": sent}, "update sent")
}
