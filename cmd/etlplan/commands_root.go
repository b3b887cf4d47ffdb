package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/etlplan/internal/config"
)

var cfg = new(config.Config)

var rootCmd = &cobra.Command{
	Use:          "etlplan",
	Version:      Version,
	Short:        "Planner engine: block ranges → export pipeline",
	Long:         "etlplan partitions block ranges into bounded export jobs and renders them as a deterministic Data Pipeline definition",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		*cfg = config.Config{}
		if err := config.Init(cfg, cmd); err != nil {
			return fmt.Errorf("failed to init config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		initLogger(cmd.ErrOrStderr(), cfg.Log.Level)
		return nil
	},
}

func init() {
	config.InitLogFlags(rootCmd)
	config.InitConfigFlags(rootCmd)

	registerPlanCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerPartitionsCommand(rootCmd)
}
