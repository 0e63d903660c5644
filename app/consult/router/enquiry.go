package router

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"go-consult/app/consult/api"
)

func init() {
	routerNoAuth = append(routerNoAuth, registerPublicEnquiryRouter)
	routerCheckRole = append(routerCheckRole, registerEnquiryRouter)
}

func registerPublicEnquiryRouter(g *gin.RouterGroup) {
	g.POST("/api/v1/consult/public/enquiry", api.SubmitEnquiry)
	g.POST("/api/v1/consult/public/inbound-email", api.InboundEmail)
}

func registerEnquiryRouter(v1 *gin.RouterGroup, authMiddleware *jwt.GinJWTMiddleware) {
	r := v1.Group("")
	{
		r.POST("/api/v1/consult/enquiry/search", api.SearchEnquiries)
		r.GET("/api/v1/consult/enquiry", api.GetEnquiryDetail)
		r.PUT("/api/v1/consult/enquiry/status", api.SetEnquiryStatus)
		r.POST("/api/v1/consult/enquiry/reply", api.ReplyEnquiry)
	}
}
