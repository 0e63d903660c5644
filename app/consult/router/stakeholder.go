package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerCheckRole = append(routerCheckRole, registerStakeholderRouter)
}

func registerStakeholderRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/stakeholder", api.CreateStakeholder)
		r.PUT("/api/v1/consult/stakeholder", api.UpdateStakeholder)
		r.DELETE("/api/v1/consult/stakeholder", api.DeleteStakeholder)
		r.POST("/api/v1/consult/stakeholder/search", api.SearchStakeholders)
		r.POST("/api/v1/consult/stakeholder/detect", api.DetectStakeholders)
		r.POST("/api/v1/consult/councillor/import", api.ImportCouncillors)
	}
}
