package middleware

import (
	"github.com/gin-gonic/gin"
)

// InitMiddleware installs the cross-cutting middleware shared by every app.
func InitMiddleware(r *gin.Engine) {
	r.Use(Secure())
	r.Use(Options())
	r.Use(Metrics())
	r.GET("/metrics", MetricsHandler())
}

// Options short-circuits CORS preflight requests.
func Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
