package middleware

import (
	"time"

	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"

	"github.com/go-admin-team/go-admin-core/sdk/config"
	"go-consult/common/middleware/handler"
)

// AuthInit builds the jwt middleware used by every authenticated route group.
func AuthInit() (*jwt.GinJWTMiddleware, error) {
	timeout := time.Hour
	if config.ApplicationConfig.Mode == "dev" {
		timeout = 24 * time.Hour
	} else if config.JwtConfig.Timeout != 0 {
		timeout = time.Duration(config.JwtConfig.Timeout) * time.Second
	}
	return jwt.New(&jwt.GinJWTMiddleware{
		Realm:           "go-consult",
		Key:             []byte(config.JwtConfig.Secret),
		Timeout:         timeout,
		MaxRefresh:      time.Hour,
		PayloadFunc:     handler.PayloadFunc,
		IdentityHandler: handler.IdentityHandler,
		Authenticator:   handler.Authenticator,
		Authorizator:    handler.Authorizator,
		Unauthorized:    handler.Unauthorized,
		TokenLookup:     "header: Authorization, query: token, cookie: jwt",
		TokenHeadName:   "Bearer",
		TimeFunc:        time.Now,
	})
}
