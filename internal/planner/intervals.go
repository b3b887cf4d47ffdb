package planner

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
	"github.com/sourceplane/etlplan/internal/partition"
)

// ValidateIntervals checks each interval on its own and against its predecessor.
// Intervals must be ascending and disjoint; every violation is reported in one error.
func ValidateIntervals(specs []model.IntervalSpec) error {
	if len(specs) == 0 {
		return apperrors.Configuration("spec.intervals", "at least one interval is required")
	}

	var result *multierror.Error
	for i, spec := range specs {
		if _, err := partition.Count(spec.Start, spec.End, spec.PartitionSize); err != nil {
			result = multierror.Append(result, fmt.Errorf("interval %d %s: %w", i, spec, err))
			continue
		}
		if i == 0 {
			continue
		}

		prev := specs[i-1]
		if prev.Start > prev.End {
			continue
		}
		if spec.Start <= prev.End {
			result = multierror.Append(result, fmt.Errorf(
				"interval %d %s overlaps or precedes interval %d %s", i, spec, i-1, prev))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return apperrors.ConfigurationCause("spec.intervals", "invalid intervals", err)
	}
	return nil
}
