package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-consult/app/tours/model"
	"go-consult/common/log"
)

func init() {
	routerNoAuth = append(routerNoAuth, tourPublicRouter())
	routerCheckRole = append(routerCheckRole, tourAuthRouter())
}

func tourPublicRouter() RouterNoAuth {
	return func(g *gin.RouterGroup, api *ToursAPI) {
		g.GET("/api/v1/tours/embed", api.GetTourByEmbedToken())
	}
}

func tourAuthRouter() RouterCheckRole {
	return func(g *gin.RouterGroup, api *ToursAPI, authMiddleware *jwt.GinJWTMiddleware) {
		g.POST("/api/v1/tours/t/", api.CreateTour())
		g.PUT("/api/v1/tours/t/", api.UpdateTour())
		g.DELETE("/api/v1/tours/t/", api.DeleteTour())
		g.GET("/api/v1/tours/t/", api.GetTour())
		g.GET("/api/v1/tours/t/list", api.GetProjectTours())
		g.PUT("/api/v1/tours/t/order", api.ReorderStops())
		g.PUT("/api/v1/tours/t/published", api.SetTourPublished())
	}
}

func (api *ToursAPI) CreateTour() GinHandler {
	return func(c *gin.Context) {
		var req model.Tour
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, 500, err, "invalid request")
			return
		}
		if req.ProjectID <= 0 {
			response.Error(c, 500, nil, "projectId is required")
			return
		}
		if len(req.Title) == 0 {
			response.Error(c, 500, nil, "title is required")
			return
		}

		resp, err := api.ToursService.CreateTour(c.Request.Context(), req)
		if err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, resp, "created")
	}
}

func (api *ToursAPI) UpdateTour() GinHandler {
	return func(c *gin.Context) {
		var req model.Tour
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, 500, err, "invalid request")
			return
		}
		if req.ID.IsZero() {
			response.Error(c, 500, nil, "id is required")
			return
		}
		if len(req.Title) == 0 {
			response.Error(c, 500, nil, "title is required")
			return
		}

		resp, err := api.ToursService.UpdateTour(c.Request.Context(), req)
		if err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, resp, "updated")
	}
}

func (api *ToursAPI) DeleteTour() GinHandler {
	return func(c *gin.Context) {
		id := c.Query("id")
		if len(id) == 0 {
			response.Error(c, 500, nil, "id is required")
			return
		}
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, 500, err, "invalid id")
			return
		}

		if err := api.ToursService.DeleteTour(c.Request.Context(), objectID); err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, gin.H{}, "deleted")
	}
}

func (api *ToursAPI) GetTour() GinHandler {
	return func(c *gin.Context) {
		id := c.Query("id")
		if len(id) == 0 {
			response.Error(c, 500, nil, "id is required")
			return
		}
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, 500, err, "invalid id")
			return
		}

		tour, err := api.ToursService.GetTour(c.Request.Context(), objectID)
		if err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, tour, "ok")
	}
}

func (api *ToursAPI) GetProjectTours() GinHandler {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Query("projectId"))
		if err != nil || projectID <= 0 {
			response.Error(c, 500, nil, "projectId is required")
			return
		}

		tours, err := api.ToursService.GetProjectTours(c.Request.Context(), projectID)
		if err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, tours, "ok")
	}
}

func (api *ToursAPI) ReorderStops() GinHandler {
	return func(c *gin.Context) {
		var req struct {
			ID    primitive.ObjectID `json:"id"`
			Order []int              `json:"order"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, 500, err, "invalid request")
			return
		}
		if req.ID.IsZero() {
			response.Error(c, 500, nil, "id is required")
			return
		}

		tour, err := api.ToursService.ReorderStops(c.Request.Context(), req.ID, req.Order)
		if err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, tour, "updated")
	}
}

func (api *ToursAPI) SetTourPublished() GinHandler {
	return func(c *gin.Context) {
		var req struct {
			ID        primitive.ObjectID `json:"id"`
			Published bool               `json:"published"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, 500, err, "invalid request")
			return
		}
		if req.ID.IsZero() {
			response.Error(c, 500, nil, "id is required")
			return
		}

		if err := api.ToursService.SetTourPublished(c.Request.Context(), req.ID, req.Published); err != nil {
			response.Error(c, 500, err, "")
			return
		}

		response.OK(c, gin.H{}, "updated")
	}
}

// GetTourByEmbedToken is the public embed endpoint; only published tours
// resolve.
func (api *ToursAPI) GetTourByEmbedToken() GinHandler {
	return func(c *gin.Context) {
		token := c.Query("token")
		if len(token) == 0 {
			response.Error(c, 500, nil, "token is required")
			return
		}

		tour, err := api.ToursService.GetTourByEmbedToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, 404, err, "not found")
			return
		}

		response.OK(c, tour, "ok")
	}
}
