// Package command renders the shell command executed by each export activity.
package command

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
)

// Placeholders lists the names a command template may reference.
var Placeholders = []string{"Start", "End", "Batch", "WorkerGroup"}

// Context is the data a template is executed against
type Context struct {
	Start       uint64
	End         uint64
	Batch       int
	WorkerGroup string
}

// Template is a parsed, validated command template
type Template struct {
	source      string
	workerGroup string
	tmpl        *template.Template
}

var funcs = template.FuncMap{
	// pad zero-pads a block number to eight digits, matching the export file naming
	"pad": func(n uint64) string {
		return fmt.Sprintf("%08d", n)
	},
}

// New parses source and dry-runs it so unknown placeholders fail before any job is rendered.
// Text outside {{ }} actions, including shell positional arguments like $1, is passed through verbatim.
func New(source, workerGroup string) (*Template, error) {
	if strings.TrimSpace(source) == "" {
		return nil, apperrors.Configuration("spec.command", "command template cannot be empty")
	}

	tmpl, err := template.New("command").Funcs(funcs).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, apperrors.ConfigurationCause("spec.command", "invalid command template", err)
	}

	t := &Template{source: source, workerGroup: workerGroup, tmpl: tmpl}
	if _, err := t.execute(Context{WorkerGroup: workerGroup}); err != nil {
		return nil, apperrors.ConfigurationCause("spec.command", "command template references an unknown placeholder", err)
	}

	return t, nil
}

// FromSpec builds the template declared by a command spec: the explicit
// template when set, otherwise the setup prefix followed by every enabled export.
func FromSpec(spec model.CommandSpec, workerGroup string) (*Template, error) {
	source, err := Compose(spec)
	if err != nil {
		return nil, err
	}
	return New(source, workerGroup)
}

// Compose joins the setup prefix and enabled exports with " && ", in configured order.
func Compose(spec model.CommandSpec) (string, error) {
	if spec.Template != "" {
		return spec.Template, nil
	}

	parts := make([]string, 0, len(spec.Exports)+1)
	if setup := strings.TrimSpace(spec.Setup); setup != "" {
		parts = append(parts, setup)
	}

	enabled := 0
	for i, export := range spec.Exports {
		if !export.Enabled {
			continue
		}
		run := strings.TrimSuffix(strings.TrimSpace(export.Run), "&&")
		run = strings.TrimSpace(run)
		if run == "" {
			return "", apperrors.Configuration(
				fmt.Sprintf("spec.command.exports[%d].run", i),
				fmt.Sprintf("export %q is enabled but has no command", export.Name))
		}
		parts = append(parts, run)
		enabled++
	}

	if enabled == 0 {
		return "", apperrors.Configuration("spec.command", "command needs a template or at least one enabled export")
	}

	return strings.Join(parts, " && "), nil
}

// Render produces the command string for one job
func (t *Template) Render(job model.JobSpec) (string, error) {
	return t.execute(Context{
		Start:       job.Start,
		End:         job.End,
		Batch:       job.Batch,
		WorkerGroup: t.workerGroup,
	})
}

// Source returns the unparsed template text
func (t *Template) Source() string {
	return t.source
}

func (t *Template) execute(ctx Context) (string, error) {
	var buf strings.Builder
	if err := t.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to execute command template: %w", err)
	}
	return buf.String(), nil
}
