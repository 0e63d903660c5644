package api

import (
	"github.com/gin-gonic/gin"

	"go-consult/app/consult"
	"go-consult/app/consult/service"
)

// LiveFeed upgrades to a websocket streaming pin and enquiry creation
// events to the dashboard.
func LiveFeed(c *gin.Context) {
	if err := service.ServeLiveFeed(c.Request.Context(), c.Writer, c.Request); err != nil {
		consult.Logger().WithContext(c.Request.Context()).Error("live feed upgrade: ", err.Error())
	}
}
