package handler

import (
	"github.com/gin-gonic/gin"
	jwt "github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/go-admin-team/go-admin-core/sdk/pkg"
	"go-consult/common/log"
)

type Login struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// account is the subset of the staff user row the token payload needs.
type account struct {
	UserID    int    `gorm:"column:user_id"`
	Username  string `gorm:"column:username"`
	Password  string `gorm:"column:password"`
	RoleID    int    `gorm:"column:role_id"`
	RoleKey   string `gorm:"column:role_key"`
	DataScope string `gorm:"column:data_scope"`
}

func (l *Login) get(tx *gorm.DB) (*account, error) {
	a := &account{}
	err := tx.Table("sys_user").
		Select("sys_user.user_id", "sys_user.username", "sys_user.password",
			"sys_user.role_id", "sys_role.role_key", "sys_role.data_scope").
		Joins("left join sys_role on sys_role.role_id = sys_user.role_id").
		Where("sys_user.username = ?", l.Username).
		First(a).Error
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(l.Password)); err != nil {
		return nil, err
	}
	return a, nil
}

func PayloadFunc(data interface{}) jwt.MapClaims {
	if v, ok := data.(map[string]interface{}); ok {
		u, _ := v["user"].(*account)
		return jwt.MapClaims{
			jwt.IdentityKey:  u.UserID,
			jwt.NiceKey:      u.Username,
			jwt.RoleIdKey:    u.RoleID,
			jwt.RoleKey:      u.RoleKey,
			jwt.DataScopeKey: u.DataScope,
		}
	}
	return jwt.MapClaims{}
}

func IdentityHandler(c *gin.Context) interface{} {
	claims := jwt.ExtractClaims(c)
	return map[string]interface{}{
		"IdentityKey": claims[jwt.IdentityKey],
		"UserName":    claims[jwt.NiceKey],
		"RoleKey":     claims[jwt.RoleKey],
		"UserId":      claims[jwt.IdentityKey],
		"RoleIds":     claims[jwt.RoleIdKey],
		"DataScope":   claims[jwt.DataScopeKey],
	}
}

// Authenticator validates the login form against sys_user.
func Authenticator(c *gin.Context) (interface{}, error) {
	db, err := pkg.GetOrm(c)
	if err != nil {
		log.Logger().WithContext(c.Request.Context()).Errorf("get orm: %s", err.Error())
		return nil, jwt.ErrFailedAuthentication
	}
	var l Login
	if err := c.ShouldBind(&l); err != nil {
		return nil, jwt.ErrMissingLoginValues
	}
	u, err := l.get(db.WithContext(c.Request.Context()))
	if err != nil {
		log.Logger().WithContext(c.Request.Context()).Warnf("login %q rejected: %s", l.Username, err.Error())
		return nil, jwt.ErrFailedAuthentication
	}
	return map[string]interface{}{"user": u}, nil
}

func Authorizator(data interface{}, c *gin.Context) bool {
	if v, ok := data.(map[string]interface{}); ok {
		if role, ok := v["RoleKey"].(string); ok {
			c.Set("role", role)
		}
		return true
	}
	return false
}

func Unauthorized(c *gin.Context, code int, message string) {
	response.Custum(c, gin.H{
		"code": code,
		"msg":  message,
	})
}
