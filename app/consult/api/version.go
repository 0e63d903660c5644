package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/common/global"
)

func GetVersion(c *gin.Context) {
	response.OK(c, GetVersionResp{Version: global.Version}, "ok")
}

type GetVersionResp struct {
	Version string `json:"version"`
}
