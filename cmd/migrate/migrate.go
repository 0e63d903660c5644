package migrate

import (
	"github.com/go-admin-team/go-admin-core/config/source/file"
	"github.com/go-admin-team/go-admin-core/sdk"
	"github.com/go-admin-team/go-admin-core/sdk/config"
	"github.com/spf13/cobra"

	"go-consult/app/consult/model"
	"go-consult/common/database"
	"go-consult/common/log"
	ext "go-consult/config"
)

var (
	configYml string
	StartCmd  = &cobra.Command{
		Use:          "migrate",
		Short:        "Create or update the database schema",
		Example:      "go-consult migrate -c config/settings.yml",
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
	config.ExtendConfig = &ext.ExtConfig
	config.Setup(
		file.NewSource(file.WithPath(configYml)),
		database.Setup,
	)
	db := sdk.Runtime.GetDbByKey("")
	err := db.AutoMigrate(
		&model.SysUser{},
		&model.SysRole{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Stakeholder{},
		&model.Councillor{},
		&model.Enquiry{},
		&model.EnquiryReply{},
		&model.PublicPin{},
		&model.FeedbackForm{},
		&model.Subscriber{},
		&model.AnalysisRun{},
		&model.ExportTask{},
	)
	if err != nil {
		log.Logger().Error("migrate: ", err.Error())
		return err
	}
	log.Logger().Info("migration complete")
	return nil
}
