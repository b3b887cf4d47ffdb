package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/sourceplane/etlplan/internal/command"
	"github.com/sourceplane/etlplan/internal/loader"
	"github.com/sourceplane/etlplan/internal/model"
	"github.com/sourceplane/etlplan/internal/normalize"
	"github.com/sourceplane/etlplan/internal/planner"
	"github.com/sourceplane/etlplan/internal/render"
)

// pipelineBuild holds every intermediate product of one generator run
type pipelineBuild struct {
	Config *model.PipelineConfig
	Jobs   []model.JobSpec
	Doc    *model.PipelineDocument
}

// loadPipelineConfig loads and normalizes the pipeline config at path
func loadPipelineConfig(out io.Writer, path string) (*model.PipelineConfig, error) {
	fmt.Fprintln(out, "□ Loading pipeline config...")
	l, err := loader.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loader: %w", err)
	}

	raw, err := l.LoadPipelineConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline config: %w", err)
	}

	fmt.Fprintln(out, "□ Normalizing config...")
	normalized, err := normalize.NormalizePipelineConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize pipeline config: %w", err)
	}

	return normalized, nil
}

// buildPipeline runs the whole generator in memory. Nothing is written;
// any failure aborts before a document exists.
func buildPipeline(out io.Writer, path string) (*pipelineBuild, error) {
	normalized, err := loadPipelineConfig(out, path)
	if err != nil {
		return nil, err
	}
	spec := normalized.Spec

	fmt.Fprintln(out, "□ Compiling command template...")
	tmpl, err := command.FromSpec(spec.Command, spec.WorkerGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to compile command: %w", err)
	}
	log.WithField("command", tmpl.Source()).Debug("Compiled command template")

	fmt.Fprintln(out, "□ Partitioning intervals...")
	jobs, err := planner.NewJobPlanner(spec.MaxActivities).PlanJobs(spec.Intervals)
	if err != nil {
		return nil, fmt.Errorf("failed to plan jobs: %w", err)
	}
	log.WithField("intervals", len(spec.Intervals)).WithField("jobs", len(jobs)).Debug("Planned jobs")

	fmt.Fprintln(out, "□ Rendering pipeline...")
	doc, err := render.NewRendererFromConfig(normalized).RenderPipeline(jobs, spec.Default, spec.Output, tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to render pipeline: %w", err)
	}

	return &pipelineBuild{Config: normalized, Jobs: jobs, Doc: doc}, nil
}
