package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerNoAuth = append(routerNoAuth, registerPublicPinRouter)
	routerCheckRole = append(routerCheckRole, registerPinRouter)
}

func registerPublicPinRouter(g *gin.RouterGroup) {
	g.POST("/api/v1/consult/public/pin", api.SubmitPin)
	g.GET("/api/v1/consult/public/pin", api.ListPublicPins)
	g.POST("/api/v1/consult/public/pin/react", api.ReactToPin)
	g.GET("/api/v1/consult/public/form", api.GetFeedbackForm)
}

func registerPinRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/pin/search", api.SearchPins)
		r.PUT("/api/v1/consult/pin/status", api.ModeratePin)
		r.DELETE("/api/v1/consult/pin", api.DeletePin)
		r.POST("/api/v1/consult/form", api.UpsertFeedbackForm)
		r.GET("/api/v1/consult/form", api.GetFeedbackForm)
		r.GET("/api/v1/consult/form/answers", api.GetAnswerCounts)
	}
}
