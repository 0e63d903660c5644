package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerNoAuth = append(routerNoAuth, registerPublicMiscRouter)
	routerCheckRole = append(routerCheckRole, registerMiscRouter)
}

func registerPublicMiscRouter(g *gin.RouterGroup) {
	g.GET("/api/v1/consult/version", api.GetVersion)
	g.GET("/api/v1/consult/public/file", api.DownloadFile)
}

func registerMiscRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/file", api.UploadFile)
		r.GET("/api/v1/consult/server-status", api.GetServerStatus)
		r.GET("/api/v1/consult/live", api.LiveFeed)
	}
}
