package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerCheckRole = append(routerCheckRole, registerAnalysisRouter)
}

func registerAnalysisRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/analysis/run", api.RunAnalysis)
		r.GET("/api/v1/consult/analysis/latest", api.GetLatestAnalysis)
	}
}
