package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sourceplane/etlplan/internal/config"
	"github.com/sourceplane/etlplan/internal/render"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the export pipeline from a pipeline config",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generatePlan(cmd)
	},
}

func registerPlanCommand(root *cobra.Command) {
	root.AddCommand(planCmd)
	config.InitPlanFlags(planCmd)
}

func generatePlan(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	layout, err := render.ParseLayout(cfg.Plan.Layout)
	if err != nil {
		return err
	}

	build, err := buildPipeline(out, cfg.Plan.Config)
	if err != nil {
		return err
	}

	if cfg.Plan.Debug {
		fmt.Fprintln(out, "\n"+render.DebugDump(build.Doc))
	}

	if err := render.WriteDocument(build.Doc, layout, cfg.Plan.Output); err != nil {
		return fmt.Errorf("failed to write pipeline: %w", err)
	}
	log.WithField("path", cfg.Plan.Output).WithField("layout", layout).Info("Wrote pipeline")

	fmt.Fprintf(out, "✓ Pipeline generated with %d activities\n", len(build.Doc.Activities))
	fmt.Fprintf(out, "✓ Saved to: %s\n", cfg.Plan.Output)

	if cfg.Plan.View != "" {
		viewer := render.NewPlanViewer(build.Doc)
		var view string

		switch cfg.Plan.View {
		case "intervals":
			view = viewer.ViewIntervals(cfg.Plan.Limit)
		default:
			view = viewer.ViewSummary()
		}

		fmt.Fprintln(out, "\n"+view)
	}

	return nil
}
