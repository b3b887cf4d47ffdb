package loader

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sourceplane/etlplan/internal/apperrors"
	"github.com/sourceplane/etlplan/internal/model"
	"github.com/sourceplane/etlplan/internal/schema"
)

// Loader reads pipeline config files and validates them against the embedded schema
type Loader struct {
	validator *schema.Validator
}

// NewLoader creates a loader with compiled schemas
func NewLoader() (*Loader, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Loader{validator: validator}, nil
}

// LoadPipelineConfig loads, validates and parses a pipeline config file (YAML or JSON)
func (l *Loader) LoadPipelineConfig(path string) (*model.PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config file: %w", err)
	}

	log.WithField("path", path).WithField("bytes", len(data)).Debug("Loaded pipeline config")
	return l.ParsePipelineConfig(data)
}

// ParsePipelineConfig validates and parses raw pipeline config bytes
func (l *Loader) ParsePipelineConfig(data []byte) (*model.PipelineConfig, error) {
	if err := l.validator.ValidatePipelineConfig(data); err != nil {
		return nil, apperrors.ConfigurationCause("", "pipeline config does not match schema", err)
	}

	var cfg model.PipelineConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, apperrors.ConfigurationCause("", "failed to parse pipeline config", err)
	}

	log.WithField("intervals", len(cfg.Spec.Intervals)).Debug("Parsed pipeline config")
	return &cfg, nil
}
