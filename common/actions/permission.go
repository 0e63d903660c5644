package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/go-admin-team/go-admin-core/logger"
	"github.com/go-admin-team/go-admin-core/sdk/config"
	"github.com/go-admin-team/go-admin-core/sdk/pkg"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/jwtauth/user"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"
	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/common/gormscope"
	"go-consult/common/util"
)

const PermissionKey = "dataPermission"

type DataPermission struct {
	DataScope string
	UserId    int
	RoleId    int
}

func PermissionAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		db, err := pkg.GetOrm(c)
		if err != nil {
			log.Error(err)
			return
		}
		db = db.WithContext(c.Request.Context())

		msgID := pkg.GenerateMsgIDFromContext(c)
		var p = new(DataPermission)
		if userId := user.GetUserIdStr(c); userId != "" {
			p, err = newDataPermission(db, userId)
			if err != nil {
				log.Errorf("MsgID[%s] PermissionAction error: %s", msgID, err)
				response.Error(c, 500, err, "data permission lookup failed")
				c.Abort()
				return
			}
		}
		c.Set(PermissionKey, p)
		c.Next()
	}
}

func newDataPermission(tx *gorm.DB, userId interface{}) (*DataPermission, error) {
	p := &DataPermission{}
	err := tx.Table("sys_user").
		Select("sys_user.user_id", "sys_role.role_id", "sys_role.data_scope").
		Joins("left join sys_role on sys_role.role_id = sys_user.role_id").
		Where("sys_user.user_id = ?", userId).
		Scan(p).Error
	if err != nil {
		return nil, errors.New("load user data scope: " + err.Error())
	}
	return p, nil
}

// Permission restricts rows by creator according to the user's data scope.
func Permission(tableName string, p *DataPermission) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !config.ApplicationConfig.EnableDP {
			return db
		}
		switch p.DataScope {
		case "2":
			return db.Where(tableName+".create_by in (select user_id from sys_user where role_id = ?)", p.RoleId)
		case "5":
			return db.Where(tableName+".create_by = ?", p.UserId)
		default:
			return db
		}
	}
}

// GetPermissionFromContext recovers the permission outside gin handlers,
// for service code holding only a context.Context.
func GetPermissionFromContext(ctx context.Context) *DataPermission {
	p := new(DataPermission)
	c := consult.GinContext(ctx)
	if c != nil {
		if pm := c.Value(PermissionKey); pm != nil {
			util.Set(pm, &p)
		}
	}
	return p
}

// ProjectPermission limits table rows to projects the current user is a
// member of. Admin-scope users ("1") see everything.
func ProjectPermission(ctx context.Context, table string) gormscope.Scope {
	return func(db *gorm.DB) *gorm.DB {
		p := GetPermissionFromContext(ctx)
		if p.UserId == 0 || p.DataScope == "1" {
			return db
		}
		return db.Where(
			fmt.Sprintf("%s.project_id in (select project_id from consult_project_member where user_id = ?)", table),
			p.UserId,
		)
	}
}

// OwnProjects is the variant for the project table itself, filtering on id
// rather than a project_id foreign key.
func OwnProjects(ctx context.Context) gormscope.Scope {
	return func(db *gorm.DB) *gorm.DB {
		p := GetPermissionFromContext(ctx)
		if p.UserId == 0 || p.DataScope == "1" {
			return db
		}
		return db.Where(
			"consult_project.id in (select project_id from consult_project_member where user_id = ?)",
			p.UserId,
		)
	}
}

// ProjectPermissionFromUserId is the background-job variant, where no gin
// context exists but the task row recorded its requester.
func ProjectPermissionFromUserId(userId int, table string) gormscope.Scope {
	return func(db *gorm.DB) *gorm.DB {
		if userId == 0 {
			return db
		}
		return db.Where(
			fmt.Sprintf("%s.project_id in (select project_id from consult_project_member where user_id = ?)", table),
			userId,
		)
	}
}
