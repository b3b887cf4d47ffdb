package planner

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
)

func TestBuildJobs_SequenceResetsPerInterval(t *testing.T) {
	jobs, err := BuildJobs([]model.IntervalSpec{
		{Start: 0, End: 9, PartitionSize: 5},
		{Start: 10, End: 10, PartitionSize: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.JobSpec{
		{Start: 0, End: 4, Batch: 0, Interval: 0},
		{Start: 5, End: 9, Batch: 1, Interval: 0},
		{Start: 10, End: 10, Batch: 0, Interval: 1},
	}, jobs)
}

func TestBuildJobs_DenserRecentIntervals(t *testing.T) {
	jobs, err := BuildJobs([]model.IntervalSpec{
		{Start: 0, End: 999999, PartitionSize: 1000000},
		{Start: 1000000, End: 3999999, PartitionSize: 100000},
		{Start: 4000000, End: 4999999, PartitionSize: 10000},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1+30+100)

	assert.Equal(t, model.JobSpec{Start: 0, End: 999999}, jobs[0])
	assert.Equal(t, model.JobSpec{Start: 1000000, End: 1099999, Batch: 0, Interval: 1}, jobs[1])
	assert.Equal(t, model.JobSpec{Start: 4990000, End: 4999999, Batch: 99, Interval: 2}, jobs[len(jobs)-1])

	seen := make(map[[2]uint64]bool, len(jobs))
	for i, job := range jobs {
		key := [2]uint64{job.Start, job.End}
		assert.False(t, seen[key], "duplicate bounds %v", key)
		seen[key] = true
		if i > 0 {
			assert.Equal(t, jobs[i-1].End+1, job.Start, "jobs must be contiguous and ascending")
		}
	}
}

func TestBuildJobs_JobCount(t *testing.T) {
	jobs, err := BuildJobs([]model.IntervalSpec{{Start: 9000000, End: 9999999, PartitionSize: 1000}})
	require.NoError(t, err)
	assert.Len(t, jobs, 1000)

	jobs, err = BuildJobs([]model.IntervalSpec{{Start: 1, End: 10, PartitionSize: 3}})
	require.NoError(t, err)
	assert.Len(t, jobs, 4)
	assert.Equal(t, model.JobSpec{Start: 10, End: 10, Batch: 3}, jobs[3])
}

func TestBuildJobs_Deterministic(t *testing.T) {
	specs := []model.IntervalSpec{
		{Start: 100, End: 250, PartitionSize: 20},
		{Start: 251, End: 260, PartitionSize: 3},
	}
	first, err := BuildJobs(specs)
	require.NoError(t, err)
	second, err := BuildJobs(specs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildJobs_ConfigurationErrors(t *testing.T) {
	tests := map[string]struct {
		specs        []model.IntervalSpec
		invalidRange bool
	}{
		"empty list": {
			specs: nil,
		},
		"zero partition size": {
			specs:        []model.IntervalSpec{{Start: 0, End: 9, PartitionSize: 0}},
			invalidRange: true,
		},
		"inverted bounds": {
			specs:        []model.IntervalSpec{{Start: 9, End: 0, PartitionSize: 5}},
			invalidRange: true,
		},
		"overlapping intervals": {
			specs: []model.IntervalSpec{
				{Start: 0, End: 10, PartitionSize: 5},
				{Start: 10, End: 20, PartitionSize: 5},
			},
		},
		"descending intervals": {
			specs: []model.IntervalSpec{
				{Start: 100, End: 199, PartitionSize: 50},
				{Start: 0, End: 99, PartitionSize: 50},
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			jobs, err := BuildJobs(tc.specs)
			assert.Nil(t, jobs)
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
			assert.Equal(t, tc.invalidRange, apperrors.IsInvalidRange(err))
		})
	}
}

func TestValidateIntervals_ReportsEveryViolation(t *testing.T) {
	err := ValidateIntervals([]model.IntervalSpec{
		{Start: 0, End: 9, PartitionSize: 0},
		{Start: 20, End: 29, PartitionSize: 5},
		{Start: 25, End: 40, PartitionSize: 5},
	})
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "interval 0")
	assert.Contains(t, err.Error(), "interval 2 [25, 40]/5 overlaps or precedes interval 1 [20, 29]/5")
}

func TestValidateIntervals_Adjacent(t *testing.T) {
	assert.NoError(t, ValidateIntervals([]model.IntervalSpec{
		{Start: 0, End: 9, PartitionSize: 5},
		{Start: 10, End: 19, PartitionSize: 2},
		{Start: 100, End: 100, PartitionSize: 1},
	}))
}

func TestPlanJobs_MaxJobs(t *testing.T) {
	specs := []model.IntervalSpec{{Start: 0, End: 99, PartitionSize: 10}}

	jobs, err := NewJobPlanner(10).PlanJobs(specs)
	require.NoError(t, err)
	assert.Len(t, jobs, 10)

	jobs, err = NewJobPlanner(9).PlanJobs(specs)
	assert.Nil(t, jobs)
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "plan needs 10 jobs, more than the limit of 9")
}

func TestPlanJobs_RejectsBeforeAllocating(t *testing.T) {
	_, err := NewJobPlanner(1000).PlanJobs([]model.IntervalSpec{{Start: 0, End: 1 << 62, PartitionSize: 1}})
	assert.True(t, apperrors.IsConfiguration(err))
}
