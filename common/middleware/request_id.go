package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestId echoes an inbound request id header or generates one,
// so every log line of a request can be correlated.
func RequestId(trafficKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(trafficKey)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		c.Set(trafficKey, requestId)
		c.Header(trafficKey, requestId)
		c.Next()
	}
}
