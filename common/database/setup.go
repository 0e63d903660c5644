package database

import (
	"time"

	coreConfig "github.com/go-admin-team/go-admin-core/sdk/config"

	"github.com/go-admin-team/go-admin-core/sdk"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var opens = map[string]func(string) gorm.Dialector{
	"mysql":     mysql.Open,
	"postgres":  postgres.Open,
	"sqlite3":   sqlite.Open,
	"sqlserver": sqlserver.Open,
}

// Setup opens every configured database and registers it with the sdk runtime.
// It is passed as a callback to config.Setup.
func Setup() {
	for key, cfg := range coreConfig.DatabasesConfig {
		setupDatabase(key, cfg)
	}
}

func setupDatabase(key string, c *coreConfig.Database) {
	open, ok := opens[c.Driver]
	if !ok {
		panic("database driver not supported: " + c.Driver)
	}
	db, err := gorm.Open(open(c.Source), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.ConnMaxLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifeTime) * time.Second)
	}
	sdk.Runtime.SetDb(key, db)
}
