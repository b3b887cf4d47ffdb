package model

import "fmt"

// IntervalSpec is one configured (lo, hi, max_size) triple
type IntervalSpec struct {
	Start         uint64 `yaml:"start" json:"start"`
	End           uint64 `yaml:"end" json:"end"`
	PartitionSize uint64 `yaml:"partitionSize" json:"partitionSize"`
}

// Size returns the number of blocks covered by the interval.
// Zero means the interval spans the whole uint64 domain.
func (s IntervalSpec) Size() uint64 {
	return s.End - s.Start + 1
}

func (s IntervalSpec) String() string {
	return fmt.Sprintf("[%d, %d]/%d", s.Start, s.End, s.PartitionSize)
}

// Partition is an inclusive, size-bounded sub-range of an interval
type Partition struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// Size returns the number of blocks in the partition
func (p Partition) Size() uint64 {
	return p.End - p.Start + 1
}

// JobSpec is one independent unit of export work derived from a partition.
// Identity is (Start, End, Batch); Interval is informational.
type JobSpec struct {
	Start    uint64 `json:"start" yaml:"start"`
	End      uint64 `json:"end" yaml:"end"`
	Batch    int    `json:"batch" yaml:"batch"`       // zero-based index within the originating interval
	Interval int    `json:"interval" yaml:"interval"` // index of the originating IntervalSpec
}

// Arguments returns the positional script arguments [start, end, batch]
func (j JobSpec) Arguments() []string {
	return []string{
		fmt.Sprintf("%d", j.Start),
		fmt.Sprintf("%d", j.End),
		fmt.Sprintf("%d", j.Batch),
	}
}
