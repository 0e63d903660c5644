package middleware

import (
	sentinel "github.com/alibaba/sentinel-golang/api"
	sentinelPlugin "github.com/alibaba/sentinel-golang/pkg/adapters/gin"
	"github.com/gin-gonic/gin"

	"go-consult/common/log"
)

func init() {
	if err := sentinel.InitDefault(); err != nil {
		log.Logger().Errorf("sentinel init: %s", err.Error())
	}
}

// Sentinel rejects requests above the configured flow rules with a 429.
func Sentinel() gin.HandlerFunc {
	return sentinelPlugin.SentinelMiddleware(
		sentinelPlugin.WithBlockFallback(func(c *gin.Context) {
			c.AbortWithStatusJSON(429, gin.H{
				"code": 429,
				"msg":  "too many requests",
			})
		}),
	)
}
