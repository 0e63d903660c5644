package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"go-consult/app/consult/service"
)

func GetServerStatus(c *gin.Context) {
	response.OK(c, service.GetServerStatus(c.Request.Context()), "ok")
}
