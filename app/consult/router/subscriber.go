package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerNoAuth = append(routerNoAuth, registerPublicSubscriberRouter)
	routerCheckRole = append(routerCheckRole, registerSubscriberRouter)
}

func registerPublicSubscriberRouter(g *gin.RouterGroup) {
	g.POST("/api/v1/consult/public/subscribe", api.Subscribe)
	g.GET("/api/v1/consult/public/subscribe/confirm", api.ConfirmSubscription)
	g.GET("/api/v1/consult/public/unsubscribe", api.Unsubscribe)
}

func registerSubscriberRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/subscriber/search", api.SearchSubscribers)
		r.POST("/api/v1/consult/subscriber/update", api.SendProjectUpdate)
	}
}
