package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/etlplan/internal/model"
)

// PlanViewer provides human-readable views of a rendered pipeline
type PlanViewer struct {
	doc *model.PipelineDocument
}

// NewPlanViewer creates a new plan viewer
func NewPlanViewer(doc *model.PipelineDocument) *PlanViewer {
	return &PlanViewer{doc: doc}
}

// intervalGroup is a run of activities that came from the same configured interval
type intervalGroup struct {
	index      int
	activities []model.ActivityNode
}

// maxJobSize is the widest block span of any activity in the group.
// It only equals the configured partition size when the interval spans at least one full partition.
func (g intervalGroup) maxJobSize() uint64 {
	var size uint64
	for _, activity := range g.activities {
		if s := activity.Job.End - activity.Job.Start + 1; s > size {
			size = s
		}
	}
	return size
}

func (pv *PlanViewer) groups() []intervalGroup {
	var groups []intervalGroup
	for _, activity := range pv.doc.Activities {
		if len(groups) == 0 || groups[len(groups)-1].index != activity.Job.Interval {
			groups = append(groups, intervalGroup{index: activity.Job.Interval})
		}
		last := &groups[len(groups)-1]
		last.activities = append(last.activities, activity)
	}
	return groups
}

// ViewSummary returns one line per interval with its block span and job count
func (pv *PlanViewer) ViewSummary() string {
	if len(pv.doc.Activities) == 0 {
		return "No activities in pipeline"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-10s %-25s %-12s %s\n", "INTERVAL", "BLOCKS", "MAX JOB", "JOBS"))
	for _, g := range pv.groups() {
		first := g.activities[0].Job
		last := g.activities[len(g.activities)-1].Job
		sb.WriteString(fmt.Sprintf("%-10d %-25s %-12d %d\n",
			g.index,
			fmt.Sprintf("%d-%d", first.Start, last.End),
			g.maxJobSize(),
			len(g.activities)))
	}
	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Summary: %d intervals, %d activities, output %s\n",
		len(pv.groups()), len(pv.doc.Activities), pv.doc.Output.ID))

	return sb.String()
}

// ViewIntervals returns a tree of intervals and their activities.
// Intervals with more than limit activities show the first and last limit/2; limit <= 0 shows all.
func (pv *PlanViewer) ViewIntervals(limit int) string {
	if len(pv.doc.Activities) == 0 {
		return "No activities in pipeline"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s [%s]\n", pipelineName(pv.doc), pv.doc.Default.Policy.ScheduleType))

	groups := pv.groups()
	for i, g := range groups {
		isLastGroup := i == len(groups)-1

		groupPrefix := "├─ "
		connector := "│  "
		if isLastGroup {
			groupPrefix = "└─ "
			connector = "   "
		}
		sb.WriteString(fmt.Sprintf("%sinterval %d (%d jobs)\n", groupPrefix, g.index, len(g.activities)))

		shown := visible(len(g.activities), limit)
		for j, idx := range shown {
			if j > 0 && idx != shown[j-1]+1 {
				sb.WriteString(fmt.Sprintf("%s├─ ... %d more\n", connector, idx-shown[j-1]-1))
			}
			activity := g.activities[idx]
			jobPrefix := "├─ "
			if j == len(shown)-1 {
				jobPrefix = "└─ "
			}
			sb.WriteString(fmt.Sprintf("%s%s%s | %s\n", connector, jobPrefix, activity.ID, strings.Join(activity.ScriptArguments, " ")))
		}
	}

	sb.WriteString(fmt.Sprintf("    → %s (%s)\n", pv.doc.Output.ID, pv.doc.Output.DirectoryPath))
	return sb.String()
}

func visible(n, limit int) []int {
	if limit <= 0 || n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	head := (limit + 1) / 2
	tail := limit - head
	idx := make([]int, 0, limit)
	for i := 0; i < head; i++ {
		idx = append(idx, i)
	}
	for i := n - tail; i < n; i++ {
		idx = append(idx, i)
	}
	return idx
}

// DebugDump outputs debug information about the document
func DebugDump(doc *model.PipelineDocument) string {
	output := fmt.Sprintf("Pipeline: %s (%s)\n", doc.Name, doc.Description)
	output += fmt.Sprintf("Objects: %d\n\n", len(doc.Activities)+2)

	for _, obj := range doc.Objects() {
		output += fmt.Sprintf("Object: %s\n", obj.ID)
		for _, field := range obj.Fields {
			if field.RefValue != "" {
				output += fmt.Sprintf("  %s: ref(%s)\n", field.Key, field.RefValue)
			} else {
				output += fmt.Sprintf("  %s: %s\n", field.Key, field.StringValue)
			}
		}
		output += "\n"
	}

	return output
}
