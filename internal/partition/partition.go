// Package partition splits an inclusive block range into ordered, size-bounded partitions.
package partition

import (
	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
)

// Split divides [lo, hi] into consecutive partitions of at most maxSize blocks.
// The last partition holds the remainder when the range is not a multiple of maxSize.
func Split(lo, hi, maxSize uint64) ([]model.Partition, error) {
	if err := check(lo, hi, maxSize); err != nil {
		return nil, err
	}

	partitions := make([]model.Partition, 0, capacity(lo, hi, maxSize))
	for cursor := lo; ; {
		end := hi
		// cursor+maxSize-1 < hi, written so it cannot overflow near MaxUint64
		if hi-cursor >= maxSize {
			end = cursor + maxSize - 1
		}
		partitions = append(partitions, model.Partition{Start: cursor, End: end})
		if end == hi {
			break
		}
		cursor = end + 1
	}

	return partitions, nil
}

// Count returns ceil((hi-lo+1)/maxSize) without materializing the partitions.
func Count(lo, hi, maxSize uint64) (uint64, error) {
	if err := check(lo, hi, maxSize); err != nil {
		return 0, err
	}
	// (hi-lo)/maxSize + 1 == ceil((hi-lo+1)/maxSize) and cannot overflow
	return (hi-lo)/maxSize + 1, nil
}

func check(lo, hi, maxSize uint64) error {
	if maxSize == 0 {
		return apperrors.InvalidRange("partition size must be at least 1")
	}
	if lo > hi {
		return apperrors.InvalidRange("range start %d is greater than end %d", lo, hi)
	}
	return nil
}

// capacity bounds the preallocation; huge ranges grow the slice on demand.
func capacity(lo, hi, maxSize uint64) int {
	const maxPrealloc = 1 << 16
	n := (hi-lo)/maxSize + 1
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
