package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourceplane/etlplan/internal/model"
	"github.com/sourceplane/etlplan/internal/planner"
)

func TestViewSummary(t *testing.T) {
	out := NewPlanViewer(renderTestDocument(t)).ViewSummary()

	assert.Contains(t, out, "Summary: 2 intervals, 3 activities, output S3OutputLocation")
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"INTERVAL", "BLOCKS", "MAX", "JOB", "JOBS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "0-9", "5", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "10-10", "1", "1"}, strings.Fields(lines[2]))
}

func TestViewSummary_ShortInterval(t *testing.T) {
	jobs, err := planner.BuildJobs([]model.IntervalSpec{{Start: 100, End: 102, PartitionSize: 1000}})
	require.NoError(t, err)
	doc, err := testRenderer().RenderPipeline(jobs, testPolicy, testOutput, testTemplate(t))
	require.NoError(t, err)

	lines := strings.Split(NewPlanViewer(doc).ViewSummary(), "\n")
	assert.Equal(t, []string{"0", "100-102", "3", "1"}, strings.Fields(lines[1]))
}

func TestViewIntervals_Truncates(t *testing.T) {
	jobs, err := planner.BuildJobs([]model.IntervalSpec{{Start: 0, End: 99, PartitionSize: 10}})
	require.NoError(t, err)
	doc, err := testRenderer().RenderPipeline(jobs, testPolicy, testOutput, testTemplate(t))
	require.NoError(t, err)

	out := NewPlanViewer(doc).ViewIntervals(4)
	assert.Contains(t, out, "└─ interval 0 (10 jobs)")
	assert.Contains(t, out, "ExportActivity_0_9_0 | 0 9 0")
	assert.Contains(t, out, "ExportActivity_10_19_1")
	assert.Contains(t, out, "... 6 more")
	assert.Contains(t, out, "ExportActivity_80_89_8")
	assert.Contains(t, out, "└─ ExportActivity_90_99_9")
	assert.NotContains(t, out, "ExportActivity_50_59_5")

	full := NewPlanViewer(doc).ViewIntervals(0)
	assert.Contains(t, full, "ExportActivity_50_59_5")
}

func TestViewEmpty(t *testing.T) {
	viewer := NewPlanViewer(&model.PipelineDocument{})
	assert.Equal(t, "No activities in pipeline", viewer.ViewSummary())
	assert.Equal(t, "No activities in pipeline", viewer.ViewIntervals(10))
}

func TestDebugDump(t *testing.T) {
	out := DebugDump(renderTestDocument(t))
	assert.Contains(t, out, "Objects: 5")
	assert.Contains(t, out, "output: ref(S3OutputLocation)")
	assert.Contains(t, out, "scriptArgument: 10")
}
