package planner

import (
	"fmt"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
	"github.com/sourceplane/etlplan/internal/partition"
)

const maxPrealloc = 1 << 20

// JobPlanner expands configured intervals into an ordered list of jobs
type JobPlanner struct {
	maxJobs int // 0 means unlimited
}

// NewJobPlanner creates a job planner; maxJobs caps the total number of jobs (0 disables the cap)
func NewJobPlanner(maxJobs int) *JobPlanner {
	return &JobPlanner{maxJobs: maxJobs}
}

// BuildJobs plans jobs for specs without a job ceiling
func BuildJobs(specs []model.IntervalSpec) ([]model.JobSpec, error) {
	return NewJobPlanner(0).PlanJobs(specs)
}

// PlanJobs validates every interval, then partitions each one and tags the
// partitions with their position inside that interval. Jobs keep interval
// order, then partition order.
func (jp *JobPlanner) PlanJobs(specs []model.IntervalSpec) ([]model.JobSpec, error) {
	if err := ValidateIntervals(specs); err != nil {
		return nil, err
	}

	total, err := jp.countJobs(specs)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.JobSpec, 0, total)
	for i, spec := range specs {
		partitions, err := partition.Split(spec.Start, spec.End, spec.PartitionSize)
		if err != nil {
			return nil, apperrors.ConfigurationCause(intervalField(i), fmt.Sprintf("interval %d %s cannot be partitioned", i, spec), err)
		}

		for batch, p := range partitions {
			jobs = append(jobs, model.JobSpec{
				Start:    p.Start,
				End:      p.End,
				Batch:    batch,
				Interval: i,
			})
		}
	}

	return jobs, nil
}

// countJobs sums the partition counts so oversized plans are rejected before allocation.
// The returned value is a capacity hint, bounded by maxPrealloc.
func (jp *JobPlanner) countJobs(specs []model.IntervalSpec) (int, error) {
	var total uint64
	for i, spec := range specs {
		n, err := partition.Count(spec.Start, spec.End, spec.PartitionSize)
		if err != nil {
			return 0, apperrors.ConfigurationCause(intervalField(i), fmt.Sprintf("interval %d %s cannot be partitioned", i, spec), err)
		}
		if total+n < total {
			return 0, apperrors.Configuration("spec.intervals", "plan needs more jobs than can be counted")
		}
		total += n
	}

	if jp.maxJobs > 0 && total > uint64(jp.maxJobs) {
		return 0, apperrors.Configuration("spec.maxActivities",
			fmt.Sprintf("plan needs %d jobs, more than the limit of %d", total, jp.maxJobs))
	}

	if total > maxPrealloc {
		return maxPrealloc, nil
	}
	return int(total), nil
}

func intervalField(i int) string {
	return fmt.Sprintf("spec.intervals[%d]", i)
}
