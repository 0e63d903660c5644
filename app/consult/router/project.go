package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerCheckRole = append(routerCheckRole, registerProjectRouter)
}

func registerProjectRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/project", api.CreateProject)
		r.PUT("/api/v1/consult/project", api.UpdateProject)
		r.DELETE("/api/v1/consult/project", api.DeleteProject)
		r.GET("/api/v1/consult/project", api.GetProjectDetail)
		r.GET("/api/v1/consult/project/dashboard", api.GetProjectDashboard)
		r.POST("/api/v1/consult/project/search", api.SearchProjects)
	}
}
