package normalize

import (
	"fmt"

	"github.com/sourceplane/etlplan/internal/model"
)

// Defaults mirror the reference Data Pipeline deployment
const (
	DefaultFailureAndRerunMode = "cascade"
	DefaultScheduleType        = "ondemand"
	DefaultRole                = "DataPipelineDefaultRole"
	DefaultWorkerGroup         = "ethereum-etl"
	DefaultActivityPrefix      = "ExportActivity"
	DefaultOutputID            = "S3OutputLocation"
	DefaultBucketParameter     = "myS3Bucket"
	DefaultBucketParameterName = "S3Bucket"
	DefaultOutputDirectory     = "ethereum-etl/export-pipeline"
)

// NormalizePipelineConfig returns a copy of cfg with every omitted field set
// to its default. The input is not modified.
func NormalizePipelineConfig(cfg *model.PipelineConfig) (*model.PipelineConfig, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline config cannot be nil")
	}

	normalized := *cfg
	spec := &normalized.Spec

	spec.Intervals = append([]model.IntervalSpec(nil), cfg.Spec.Intervals...)
	spec.Parameters = append([]model.Parameter(nil), cfg.Spec.Parameters...)
	spec.Command.Exports = append([]model.ExportStep(nil), cfg.Spec.Command.Exports...)

	tags := make(map[string]string, len(cfg.Spec.Tags))
	for k, v := range cfg.Spec.Tags {
		tags[k] = v
	}
	spec.Tags = tags

	if spec.WorkerGroup == "" {
		spec.WorkerGroup = DefaultWorkerGroup
	}
	if spec.ActivityPrefix == "" {
		spec.ActivityPrefix = DefaultActivityPrefix
	}

	// The bucket becomes a parameter object so field values can use #{myS3Bucket}
	bucketRef := ""
	if spec.Bucket != "" {
		if !hasParameter(spec.Parameters, DefaultBucketParameter) {
			spec.Parameters = append(spec.Parameters, model.Parameter{
				ID:          DefaultBucketParameter,
				Name:        DefaultBucketParameterName,
				Type:        "String",
				Description: "S3 bucket where CSV files will be uploaded",
				Default:     spec.Bucket,
			})
		}
		bucketRef = fmt.Sprintf("s3://#{%s}/", DefaultBucketParameter)
	}

	policy := &spec.Default
	if policy.FailureAndRerunMode == "" {
		policy.FailureAndRerunMode = DefaultFailureAndRerunMode
	}
	if policy.ScheduleType == "" {
		policy.ScheduleType = DefaultScheduleType
	}
	if policy.Role == "" {
		policy.Role = DefaultRole
	}
	if policy.PipelineLogURI == "" {
		policy.PipelineLogURI = bucketRef
	}

	if spec.Output.ID == "" {
		spec.Output.ID = DefaultOutputID
	}
	if spec.Output.DirectoryPath == "" && bucketRef != "" {
		spec.Output.DirectoryPath = bucketRef + DefaultOutputDirectory
	}

	for i := range spec.Parameters {
		if spec.Parameters[i].Type == "" {
			spec.Parameters[i].Type = "String"
		}
	}

	if _, ok := spec.Tags["Name"]; !ok && normalized.Metadata.Name != "" {
		spec.Tags["Name"] = normalized.Metadata.Name + "-pipeline"
	}

	return &normalized, nil
}

func hasParameter(params []model.Parameter, id string) bool {
	for _, p := range params {
		if p.ID == id {
			return true
		}
	}
	return false
}
