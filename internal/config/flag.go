package config

import (
	"github.com/spf13/cobra"
)

func InitLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("log.level", "l", "info", "logging level (debug, info, warn, error)")
}

func InitConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("plan.config", "c", "pipeline.yaml", "pipeline config file (yaml or json)")
}

func InitPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("plan.output", "o", "pipeline.json", "output file path (.json, .yaml or .yml)")
	cmd.Flags().String("plan.layout", "definition", "output layout (definition/cloudformation)")
	cmd.Flags().StringP("plan.view", "v", "", "view plan after writing (summary/intervals)")
	cmd.Flags().Int("plan.limit", 10, "activities shown per interval in the intervals view (0 shows all)")
	cmd.Flags().Bool("plan.debug", false, "print every rendered pipeline object")
}

func InitPartitionsFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("plan.debug", false, "list every job instead of per-interval totals")
	cmd.Flags().StringSlice("plan.only", nil, "comma-separated interval indexes to show")
}
