package render

import (
	"fmt"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/command"
	"github.com/sourceplane/etlplan/internal/model"
)

const (
	// DefaultNodeID is the fixed ID of the global policy object
	DefaultNodeID = "Default"
	// DefaultActivityPrefix names activities when no prefix is configured
	DefaultActivityPrefix = "ExportActivity"
)

// Options configures the document-level values a Renderer stamps on every document
type Options struct {
	Name           string
	Description    string
	Tags           map[string]string
	Parameters     []model.Parameter
	WorkerGroup    string
	ActivityPrefix string
}

// Renderer materializes jobs into a PipelineDocument
type Renderer struct {
	opts Options
}

// NewRenderer creates a new renderer
func NewRenderer(opts Options) *Renderer {
	if opts.ActivityPrefix == "" {
		opts.ActivityPrefix = DefaultActivityPrefix
	}
	return &Renderer{opts: opts}
}

// NewRendererFromConfig creates a renderer from a normalized pipeline config
func NewRendererFromConfig(cfg *model.PipelineConfig) *Renderer {
	return NewRenderer(Options{
		Name:           cfg.Metadata.Name,
		Description:    cfg.Metadata.Description,
		Tags:           cfg.Spec.Tags,
		Parameters:     cfg.Spec.Parameters,
		WorkerGroup:    cfg.Spec.WorkerGroup,
		ActivityPrefix: cfg.Spec.ActivityPrefix,
	})
}

// ActivityID derives the activity identifier from the job bounds and batch index
func ActivityID(prefix string, job model.JobSpec) string {
	return fmt.Sprintf("%s_%d_%d_%d", prefix, job.Start, job.End, job.Batch)
}

// RenderPipeline builds one default node, one activity per job in job order,
// and one output node that every activity references. Either the complete
// document is returned or an error; never a partial document.
func (r *Renderer) RenderPipeline(jobs []model.JobSpec, policy model.DefaultPolicy, output model.OutputLocation, tmpl *command.Template) (*model.PipelineDocument, error) {
	if len(jobs) == 0 {
		return nil, apperrors.Configuration("spec.intervals", "no jobs to render")
	}
	if tmpl == nil {
		return nil, apperrors.Configuration("spec.command", "command template is required")
	}
	if output.ID == "" {
		return nil, apperrors.Configuration("spec.output.id", "output location needs an id")
	}
	if output.DirectoryPath == "" {
		return nil, apperrors.Configuration("spec.output.directoryPath",
			fmt.Sprintf("output location %s needs a directoryPath (set spec.bucket or spec.output.directoryPath)", output.ID))
	}

	doc := &model.PipelineDocument{
		Name:        r.opts.Name,
		Description: r.opts.Description,
		Tags:        copyTags(r.opts.Tags),
		Parameters:  append([]model.Parameter(nil), r.opts.Parameters...),
		Default: model.DefaultNode{
			ID:     DefaultNodeID,
			Policy: policy,
		},
		Activities: make([]model.ActivityNode, 0, len(jobs)),
		Output: model.OutputLocationNode{
			ID:            output.ID,
			DirectoryPath: output.DirectoryPath,
		},
	}

	for _, job := range jobs {
		id := ActivityID(r.opts.ActivityPrefix, job)
		cmd, err := tmpl.Render(job)
		if err != nil {
			return nil, apperrors.ConfigurationCause("spec.command", fmt.Sprintf("failed to render command for %s", id), err)
		}

		doc.Activities = append(doc.Activities, model.ActivityNode{
			ID:              id,
			Command:         cmd,
			ScriptArguments: job.Arguments(),
			WorkerGroup:     r.opts.WorkerGroup,
			OutputRef:       output.ID,
			Stage:           true,
			Job:             job,
		})
	}

	if err := NewReferenceGraph(doc).Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

func copyTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
