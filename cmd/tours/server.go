package tours

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/config/source/file"
	sdkapi "github.com/go-admin-team/go-admin-core/sdk/api"
	"github.com/go-admin-team/go-admin-core/sdk/config"
	"github.com/go-admin-team/go-admin-core/sdk/pkg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"go-consult/app/consult"
	"go-consult/app/tours/api"
	toursservice "go-consult/app/tours/service"
	"go-consult/common/database"
	"go-consult/common/log"
	common "go-consult/common/middleware"
	"go-consult/common/storage"
	ext "go-consult/config"
)

const ServiceName = "tours"

var (
	configYml string
	StartCmd  = &cobra.Command{
		Use:          "tours",
		Short:        "Start map tour API server",
		Example:      "go-consult tours -c config/settings.yml",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
)

func init() {
	StartCmd.PersistentFlags().StringVarP(&configYml, "config", "c", "config/settings.yml", "Start server with provided configuration file")
}

func run() error {
	_ = log.WithTracer(startingCtx, PackageName, "load configuration", func(ctx context.Context) error {
		config.ExtendConfig = &ext.ExtConfig
		config.Setup(
			file.NewSource(file.WithPath(configYml)),
			database.Setup,
			storage.Setup,
		)
		return nil
	})

	var mongodbClient *mongo.Client
	_ = log.WithTracer(startingCtx, PackageName, "init MongoDB", func(ctx context.Context) error {
		cfg := ext.ExtConfig.Mongodb
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		opts := options.Client().ApplyURI(cfg.DSN)
		if ext.ExtConfig.UptraceDSN != "" {
			opts.SetMonitor(otelmongo.NewMonitor())
		}
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			panic(errors.Wrap(err, "mongo connect"))
		}
		mongodbClient = client
		return nil
	})

	service := toursservice.NewToursService(mongodbClient)
	toursAPI := api.NewToursAPI(service)

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
		api.InitRouter(r, toursAPI, authMiddleware)
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
