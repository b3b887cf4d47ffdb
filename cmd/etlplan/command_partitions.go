package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/config"
	"github.com/sourceplane/etlplan/internal/model"
	"github.com/sourceplane/etlplan/internal/partition"
	"github.com/sourceplane/etlplan/internal/planner"
)

var partitionsCmd = &cobra.Command{
	Use:     "partitions",
	Aliases: []string{"partition"},
	Short:   "List configured intervals and their partitions",
	Long:    "List every configured interval with its partition size and job count. Use --plan.debug to list each job.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPartitions(cmd)
	},
}

func registerPartitionsCommand(root *cobra.Command) {
	root.AddCommand(partitionsCmd)
	config.InitPartitionsFlags(partitionsCmd)
}

func listPartitions(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	normalized, err := loadPipelineConfig(out, cfg.Plan.Config)
	if err != nil {
		return err
	}
	intervals := normalized.Spec.Intervals

	if err := planner.ValidateIntervals(intervals); err != nil {
		return err
	}

	selected, err := selectIntervals(len(intervals), cfg.Plan.Only)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nIntervals:")
	var total uint64
	for i, spec := range intervals {
		count, err := partition.Count(spec.Start, spec.End, spec.PartitionSize)
		if err != nil {
			return err
		}
		if total+count < total {
			return apperrors.Configuration("spec.intervals", "plan needs more jobs than can be counted")
		}
		total += count
		if !selected[i] {
			continue
		}

		fmt.Fprintf(out, "  [%d] blocks %d-%d, partition size %d, %d jobs\n", i, spec.Start, spec.End, spec.PartitionSize, count)
		if cfg.Plan.Debug {
			if err := printJobs(cmd, spec); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(out, "\n✓ %d jobs in total\n", total)
	return nil
}

func printJobs(cmd *cobra.Command, spec model.IntervalSpec) error {
	jobs, err := planner.BuildJobs([]model.IntervalSpec{spec})
	if err != nil {
		return err
	}
	for _, job := range jobs {
		fmt.Fprintf(cmd.OutOrStdout(), "      %d: %d-%d\n", job.Batch, job.Start, job.End)
	}
	return nil
}

// selectIntervals parses --plan.only; no indexes selects every interval
func selectIntervals(n int, only []string) (map[int]bool, error) {
	selected := make(map[int]bool, n)
	if len(only) == 0 {
		for i := 0; i < n; i++ {
			selected[i] = true
		}
		return selected, nil
	}

	for _, raw := range only {
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 || idx >= n {
			return nil, fmt.Errorf("invalid interval index %q (have %d intervals)", raw, n)
		}
		selected[idx] = true
	}
	return selected, nil
}
