package model

// Node types understood by the orchestrator
const (
	TypeDefault              = "Default"
	TypeShellCommandActivity = "ShellCommandActivity"
	TypeS3DataNode           = "S3DataNode"
)

// PipelineDocument is the orchestrator-facing description of all jobs
type PipelineDocument struct {
	Name        string
	Description string
	Tags        map[string]string
	Parameters  []Parameter
	Default     DefaultNode
	Activities  []ActivityNode
	Output      OutputLocationNode
}

// DefaultNode carries the global execution policy
type DefaultNode struct {
	ID     string
	Policy DefaultPolicy
}

// ActivityNode is the shell command activity for a single job
type ActivityNode struct {
	ID              string
	Command         string
	ScriptArguments []string
	WorkerGroup     string
	OutputRef       string
	Stage           bool
	Job             JobSpec
}

// OutputLocationNode is the shared storage node every activity references
type OutputLocationNode struct {
	ID            string
	DirectoryPath string
}

// PipelineObject is the orchestrator's generic key/value object form
type PipelineObject struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is one object field; exactly one of StringValue or RefValue is set
type Field struct {
	Key         string `json:"key" yaml:"key"`
	StringValue string `json:"stringValue,omitempty" yaml:"stringValue,omitempty"`
	RefValue    string `json:"refValue,omitempty" yaml:"refValue,omitempty"`
}

// Objects flattens the document into pipeline objects: default first,
// activities in job order, output location last.
func (d *PipelineDocument) Objects() []PipelineObject {
	objects := make([]PipelineObject, 0, len(d.Activities)+2)
	objects = append(objects, d.Default.Object())
	for _, activity := range d.Activities {
		objects = append(objects, activity.Object())
	}
	objects = append(objects, d.Output.Object())
	return objects
}

// Object converts the default node into its pipeline object
func (n DefaultNode) Object() PipelineObject {
	fields := []Field{
		{Key: "type", StringValue: TypeDefault},
		{Key: "failureAndRerunMode", StringValue: n.Policy.FailureAndRerunMode},
		{Key: "scheduleType", StringValue: n.Policy.ScheduleType},
		{Key: "role", StringValue: n.Policy.Role},
	}
	if n.Policy.ResourceRole != "" {
		fields = append(fields, Field{Key: "resourceRole", StringValue: n.Policy.ResourceRole})
	}
	if n.Policy.PipelineLogURI != "" {
		fields = append(fields, Field{Key: "pipelineLogUri", StringValue: n.Policy.PipelineLogURI})
	}
	return PipelineObject{ID: n.ID, Name: n.ID, Fields: fields}
}

// Object converts the activity into its pipeline object
func (n ActivityNode) Object() PipelineObject {
	fields := []Field{
		{Key: "type", StringValue: TypeShellCommandActivity},
		{Key: "command", StringValue: n.Command},
	}
	for _, arg := range n.ScriptArguments {
		fields = append(fields, Field{Key: "scriptArgument", StringValue: arg})
	}
	fields = append(fields,
		Field{Key: "workerGroup", StringValue: n.WorkerGroup},
		Field{Key: "output", RefValue: n.OutputRef},
	)
	if n.Stage {
		fields = append(fields, Field{Key: "stage", StringValue: "true"})
	}
	return PipelineObject{ID: n.ID, Name: n.ID, Fields: fields}
}

// Object converts the output location into its pipeline object
func (n OutputLocationNode) Object() PipelineObject {
	return PipelineObject{
		ID:   n.ID,
		Name: n.ID,
		Fields: []Field{
			{Key: "type", StringValue: TypeS3DataNode},
			{Key: "directoryPath", StringValue: n.DirectoryPath},
		},
	}
}
