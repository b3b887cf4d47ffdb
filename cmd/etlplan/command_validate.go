package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/etlplan/internal/render"
	"github.com/sourceplane/etlplan/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a pipeline config without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validatePipeline(cmd)
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validatePipeline(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	build, err := buildPipeline(out, cfg.Plan.Config)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "□ Validating rendered definition...")
	validator, err := schema.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}
	if err := validator.ValidateDefinition(render.BuildDefinition(build.Doc)); err != nil {
		return fmt.Errorf("rendered definition is invalid: %w", err)
	}

	fmt.Fprintf(out, "✓ %d intervals, %d activities\n", len(build.Config.Spec.Intervals), len(build.Jobs))
	fmt.Fprintln(out, "✓ All validation passed")
	return nil
}
