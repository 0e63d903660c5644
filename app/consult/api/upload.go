package api

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

func UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, 500, err, "a file is required")
		return
	}
	resp, err := service.UploadFile(c.Request.Context(), header)
	if err != nil {
		response.Error(c, 500, err, "")
		return
	}
	response.OK(c, resp, "uploaded")
}

// DownloadFile streams a stored upload straight through.
func DownloadFile(c *gin.Context) {
	req := service.DownloadFileReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		consult.Logger().Error(err.Error())
		response.Error(c, 500, err, "invalid request")
		return
	}
	obj, contentType, err := service.DownloadFile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, 404, err, "not found")
		return
	}
	defer obj.Close()
	c.Header("Content-Type", contentType)
	c.Status(200)
	if _, err := io.Copy(c.Writer, obj); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error("stream upload: ", err.Error())
	}
}
