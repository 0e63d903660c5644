package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"
	"github.com/mssola/user_agent"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

// SubmitEnquiry is the public contact form endpoint.
func SubmitEnquiry(c *gin.Context) {
	var req service.SubmitEnquiryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	ua := user_agent.New(c.Request.UserAgent())
	browser, _ := ua.Browser()
	req.Browser = browser
	req.Platform = ua.Platform()

	enquiry, err := service.SubmitEnquiry(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{"id": enquiry.ID}, "thanks, we'll be in touch")
}

// InboundEmail is the mail provider's inbound webhook.
func InboundEmail(c *gin.Context) {
	var req service.InboundEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if err := service.IngestInboundEmail(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "ok")
}

func SearchEnquiries(c *gin.Context) {
	var req service.SearchEnquiriesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	resp, total, err := service.SearchEnquiries(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "search failed")
		return
	}
	response.PageOK(c, resp, int(total), req.GetPageIndex(), req.GetPageSize(), "ok")
}

func GetEnquiryDetail(c *gin.Context) {
	req := service.GetEnquiryDetailReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 {
		response.Error(c, 200, nil, "id is required")
		return
	}
	detail, err := service.GetEnquiryDetail(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, detail, "ok")
}

func SetEnquiryStatus(c *gin.Context) {
	var req service.SetEnquiryStatusReq
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

	if err := service.SetEnquiryStatus(c.Request.Context(), req); err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, gin.H{}, "updated")
}

func ReplyEnquiry(c *gin.Context) {
	var req service.ReplyEnquiryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	if req.ID <= 0 || req.Body == "" {
		response.Error(c, 200, nil, "id and body are required")
		return
	}

	req.SetCreateBy(user.GetUserId(c))

	reply, err := service.ReplyEnquiry(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, reply, "sent")
}
