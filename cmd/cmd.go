package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-consult/cmd/consult"
	"go-consult/cmd/migrate"
	"go-consult/cmd/tours"
	"go-consult/common/global"
)

var rootCmd = &cobra.Command{
	Use:          "go-consult",
	Short:        "go-consult",
	SilenceUsage: true,
	Long:         `go-consult public consultation platform`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires at least one arg")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		usage()
	},
}

func usage() {
	fmt.Println("go-consult", global.Version)
	fmt.Println("use -h for help")
}

func init() {
	rootCmd.AddCommand(consult.StartCmd)
	rootCmd.AddCommand(tours.StartCmd)
	rootCmd.AddCommand(migrate.StartCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}
