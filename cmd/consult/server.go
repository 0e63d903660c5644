package consult

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/config/source/file"
	"github.com/go-admin-team/go-admin-core/sdk"
	sdkapi "github.com/go-admin-team/go-admin-core/sdk/api"
	"github.com/go-admin-team/go-admin-core/sdk/config"
	"github.com/go-admin-team/go-admin-core/sdk/pkg"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"go-consult/app/consult"
	"go-consult/app/consult/router"
	"go-consult/app/consult/service"
	"go-consult/common/database"
	"go-consult/common/log"
	common "go-consult/common/middleware"
	"go-consult/common/storage"
	ext "go-consult/config"
)

const ServiceName = "consult_server"

var (
	configYml string
	StartCmd  = &cobra.Command{
		Use:          "server",
		Short:        "Start consultation API server",
		Example:      "go-consult server -c config/settings.yml",
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
)

func init() {
	StartCmd.PersistentFlags().StringVarP(&configYml, "config", "c", "config/settings.yml", "Start server with provided configuration file")
}

func setup() {
	_ = log.WithTracer(startingCtx, PackageName, "load configuration", func(ctx context.Context) error {
		config.ExtendConfig = &ext.ExtConfig
		config.Setup(
			file.NewSource(file.WithPath(configYml)),
			database.Setup,
			storage.Setup,
		)
		return nil
	})

	_ = log.WithTracer(startingCtx, PackageName, "init MinIO", func(ctx context.Context) error {
		cfg := ext.ExtConfig.MinIO
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds: credentials.NewStaticV4(cfg.Key, cfg.Secret, ""),
		})
		if err != nil {
			consult.Logger().WithContext(ctx).Fatal(errors.Wrap(err, "minio client"))
		}
		consult.MinIOClient = client
		return nil
	})

	_ = log.WithTracer(startingCtx, PackageName, "init redis", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		client := redis.NewClient(&redis.Options{
			Addr:     ext.ExtConfig.LocalRedis.Dsn,
			Password: ext.ExtConfig.LocalRedis.Password,
			DB:       ext.ExtConfig.LocalRedis.DB,
		})
		client.AddHook(redisotel.NewTracingHook())
		if _, err := client.Ping(ctx).Result(); err != nil {
			consult.Logger().WithContext(ctx).Fatal(errors.Wrap(err, "redis ping"))
		}
		consult.RedisClient = client
		return nil
	})

	_ = log.WithTracer(startingCtx, PackageName, "init GORM", func(ctx context.Context) error {
		consult.GormDB = sdk.Runtime.GetDbByKey("")
		if ext.ExtConfig.UptraceDSN != "" {
			if err := consult.GormDB.Use(otelgorm.NewPlugin()); err != nil {
				consult.Logger().WithContext(ctx).Fatal(err)
			}
		}
		return nil
	})

	_ = log.WithTracer(startingCtx, PackageName, "start export worker", func(ctx context.Context) error {
		if !ext.ExtConfig.Modules.ExportWorker {
			return nil
		}
		batch := ext.ExtConfig.Exports.BatchSize
		if batch <= 0 {
			batch = 500
		}
		exports := service.MakeExportTaskService(10*time.Second, time.Second,
			service.ExportStakeholdersTask{BatchSize: batch},
			service.ExportEnquiriesTask{BatchSize: batch},
			service.ExportSubscribersTask{BatchSize: batch},
			service.ExportPinsTask{BatchSize: batch},
		)
		log.SafeGo(exports.Run, log.WithName("export worker"), log.PanicToExit())
		consult.Logger().WithContext(ctx).Info("export worker started")
		return nil
	})

	_ = log.WithTracer(startingCtx, PackageName, "start scheduler", func(ctx context.Context) error {
		if !ext.ExtConfig.Modules.Scheduler {
			return nil
		}
		if _, err := service.StartScheduler(); err != nil {
			consult.Logger().WithContext(ctx).Fatal(err)
		}
		consult.Logger().WithContext(ctx).Info("scheduler started")
		return nil
	})
}

func run() error {
	if config.ApplicationConfig.Mode == pkg.ModeProd.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	_ = log.WithTracer(startingCtx, PackageName, "init router", func(ctx context.Context) error {
		authMiddleware, err := common.AuthInit()
		if err != nil {
			log.Logger().WithContext(ctx).Fatalf("JWT Init Error, %s", err.Error())
		}
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), consult.GinContextKey, c))
		})
		if ext.ExtConfig.UptraceDSN != "" {
			r.Use(otelgin.Middleware(ServiceName))
		}
		r.
			Use(common.Sentinel()).
			Use(common.RequestId(pkg.TrafficKey)).
			Use(sdkapi.SetRequestLogger)
		common.InitMiddleware(r)
		router.InitConsultRouter(r, authMiddleware)
		return nil
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.ApplicationConfig.Host, config.ApplicationConfig.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Logger().Fatal("listen: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	fmt.Printf("%s Shutdown Server ... \r\n", pkg.GetCurrentTimeStr())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Logger().Fatal("Server Shutdown:", err)
	}
	log.Logger().Println("Server exiting")

	return nil
}
