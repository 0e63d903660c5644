package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerCheckRole = append(routerCheckRole, registerExportTaskRouter)
}

func registerExportTaskRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/export", api.CreateExportTask)
		r.POST("/api/v1/consult/export/search", api.SearchExportTask)
		r.GET("/api/v1/consult/export/file", api.ExportTaskFile)
	}
}
