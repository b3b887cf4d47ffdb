package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
)

const pipelineYAML = `
apiVersion: etlplan.sourceplane.io/v1
kind: ExportPipeline
metadata:
  name: ethereum-etl
  description: Ethereum ETL Export Pipeline
spec:
  bucket: example.com
  maxActivities: 5000
  intervals:
    - {start: 9000000, end: 9999999, partitionSize: 1000}
    - {start: 10000000, end: 10999999, partitionSize: 1000}
  command:
    setup: cd /home/ec2-user/ethereum-etl
    exports:
      - name: blocks_and_transactions
        enabled: true
        run: python3 ethereumetl.py export_blocks_and_transactions -s $1 -e $2
  tags:
    Name: ethereum-etl-pipeline
`

const pipelineJSON = `{
  "apiVersion": "etlplan.sourceplane.io/v1",
  "kind": "ExportPipeline",
  "metadata": {"name": "json"},
  "spec": {
    "intervals": [{"start": 0, "end": 9, "partitionSize": 5}],
    "command": {"template": "run {{.Start}}"}
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader()
	require.NoError(t, err)
	return l
}

func TestLoadPipelineConfig_YAML(t *testing.T) {
	cfg, err := newLoader(t).LoadPipelineConfig(writeFile(t, "pipeline.yaml", pipelineYAML))
	require.NoError(t, err)

	assert.Equal(t, "ethereum-etl", cfg.Metadata.Name)
	assert.Equal(t, 5000, cfg.Spec.MaxActivities)
	assert.Equal(t, []model.IntervalSpec{
		{Start: 9000000, End: 9999999, PartitionSize: 1000},
		{Start: 10000000, End: 10999999, PartitionSize: 1000},
	}, cfg.Spec.Intervals)
	require.Len(t, cfg.Spec.Command.Exports, 1)
	assert.True(t, cfg.Spec.Command.Exports[0].Enabled)
	assert.Equal(t, "ethereum-etl-pipeline", cfg.Spec.Tags["Name"])
}

func TestLoadPipelineConfig_JSON(t *testing.T) {
	cfg, err := newLoader(t).LoadPipelineConfig(writeFile(t, "pipeline.json", pipelineJSON))
	require.NoError(t, err)
	assert.Equal(t, "run {{.Start}}", cfg.Spec.Command.Template)
	assert.Equal(t, []model.IntervalSpec{{Start: 0, End: 9, PartitionSize: 5}}, cfg.Spec.Intervals)
}

func TestLoadPipelineConfig_MissingFile(t *testing.T) {
	_, err := newLoader(t).LoadPipelineConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.False(t, apperrors.IsConfiguration(err))
}

func TestParsePipelineConfig_SchemaViolation(t *testing.T) {
	_, err := newLoader(t).ParsePipelineConfig([]byte(`
apiVersion: etlplan.sourceplane.io/v1
kind: ExportPipeline
metadata: {name: x}
spec:
  intervals: [{start: 0, end: 9, partitionSize: 0}]
  command: {template: x}
`))
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestParsePipelineConfig_UnknownField(t *testing.T) {
	_, err := newLoader(t).ParsePipelineConfig([]byte(`
apiVersion: etlplan.sourceplane.io/v1
kind: ExportPipeline
metadata: {name: x}
spec:
  intervals: [{start: 0, end: 9, partitionSize: 5}]
  command: {template: x}
  schedule: daily
`))
	assert.True(t, apperrors.IsConfiguration(err))
}
