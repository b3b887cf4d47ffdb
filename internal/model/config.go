package model

// PipelineConfig is the top-level declarative export pipeline file
type PipelineConfig struct {
	APIVersion string       `yaml:"apiVersion" json:"apiVersion"`
	Kind       string       `yaml:"kind" json:"kind"`
	Metadata   Metadata     `yaml:"metadata" json:"metadata"`
	Spec       PipelineSpec `yaml:"spec" json:"spec"`
}

// Metadata holds standard object metadata
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// PipelineSpec describes what to export and how the orchestrator runs it
type PipelineSpec struct {
	Bucket         string            `yaml:"bucket,omitempty" json:"bucket,omitempty"`
	WorkerGroup    string            `yaml:"workerGroup,omitempty" json:"workerGroup,omitempty"`
	ActivityPrefix string            `yaml:"activityPrefix,omitempty" json:"activityPrefix,omitempty"`
	MaxActivities  int               `yaml:"maxActivities,omitempty" json:"maxActivities,omitempty"`
	Intervals      []IntervalSpec    `yaml:"intervals" json:"intervals"`
	Default        DefaultPolicy     `yaml:"default,omitempty" json:"default,omitempty"`
	Output         OutputLocation    `yaml:"output,omitempty" json:"output,omitempty"`
	Command        CommandSpec       `yaml:"command" json:"command"`
	Parameters     []Parameter       `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Tags           map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// DefaultPolicy is the global execution policy applied to every pipeline object
type DefaultPolicy struct {
	FailureAndRerunMode string `yaml:"failureAndRerunMode,omitempty" json:"failureAndRerunMode,omitempty"` // cascade, none
	ScheduleType        string `yaml:"scheduleType,omitempty" json:"scheduleType,omitempty"`               // ondemand, cron, timeseries
	Role                string `yaml:"role,omitempty" json:"role,omitempty"`
	ResourceRole        string `yaml:"resourceRole,omitempty" json:"resourceRole,omitempty"`
	PipelineLogURI      string `yaml:"pipelineLogUri,omitempty" json:"pipelineLogUri,omitempty"`
}

// OutputLocation describes the single storage node every activity writes to
type OutputLocation struct {
	ID            string `yaml:"id,omitempty" json:"id,omitempty"`
	DirectoryPath string `yaml:"directoryPath,omitempty" json:"directoryPath,omitempty"`
}

// CommandSpec declares the shell command run by each activity.
// Either Template is set, or Setup plus at least one enabled export.
type CommandSpec struct {
	Template string       `yaml:"template,omitempty" json:"template,omitempty"`
	Setup    string       `yaml:"setup,omitempty" json:"setup,omitempty"`
	Exports  []ExportStep `yaml:"exports,omitempty" json:"exports,omitempty"`
}

// ExportStep is one named export command, e.g. blocks_and_transactions
type ExportStep struct {
	Name    string `yaml:"name" json:"name"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Run     string `yaml:"run" json:"run"`
}

// Parameter is a pipeline parameter object, referenced as #{id} in field values
type Parameter struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"` // CloudFormation parameter backing the object
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}
