package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/tours/service"
	"go-consult/common/actions"
)

type (
	GinHandler      = func(c *gin.Context)
	RouterNoAuth    = func(g *gin.RouterGroup, api *ToursAPI)
	RouterCheckRole = func(g *gin.RouterGroup, api *ToursAPI, authMiddleware *jwtauth.GinJWTMiddleware)
)

type ToursAPI struct {
	ToursService *service.ToursService
}

func NewToursAPI(svc *service.ToursService) *ToursAPI {
	return &ToursAPI{
		ToursService: svc,
	}
}

var (
	routerNoAuth    = make([]RouterNoAuth, 0)
	routerCheckRole = make([]RouterCheckRole, 0)
)

func InitRouter(r *gin.Engine, api *ToursAPI, authMiddleware *jwtauth.GinJWTMiddleware) {
	noAuth := r.Group("")
	for _, f := range routerNoAuth {
		f(noAuth, api)
	}
	auth := r.Group("")
	auth.Use(authMiddleware.MiddlewareFunc(), actions.PermissionAction())
	for _, f := range routerCheckRole {
		f(auth, api, authMiddleware)
	}
}
