package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/sourceplane/etlplan/internal/model"
)

// Layout selects the shape of the rendered document
type Layout string

const (
	// LayoutDefinition is the orchestrator's pipeline definition: {"objects": [...], "parameters": [...]}
	LayoutDefinition Layout = "definition"
	// LayoutCloudFormation wraps the pipeline in a CloudFormation stack template
	LayoutCloudFormation Layout = "cloudformation"
)

// ParseLayout validates a layout name; empty selects the definition layout
func ParseLayout(name string) (Layout, error) {
	switch Layout(strings.ToLower(name)) {
	case "", LayoutDefinition:
		return LayoutDefinition, nil
	case LayoutCloudFormation:
		return LayoutCloudFormation, nil
	default:
		return "", fmt.Errorf("unknown layout %q (expected %s or %s)", name, LayoutDefinition, LayoutCloudFormation)
	}
}

// Definition is the pipeline definition layout
type Definition struct {
	Objects    []map[string]interface{} `json:"objects" yaml:"objects"`
	Parameters []DefinitionParameter    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// DefinitionParameter is a parameter object in the definition layout
type DefinitionParameter struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
}

// BuildDefinition converts a document into the definition layout.
// Repeated keys become arrays and references become {"ref": id}.
func BuildDefinition(doc *model.PipelineDocument) *Definition {
	def := &Definition{Objects: make([]map[string]interface{}, 0, len(doc.Activities)+2)}

	for _, obj := range doc.Objects() {
		entry := map[string]interface{}{
			"id":   obj.ID,
			"name": obj.Name,
		}
		for _, field := range obj.Fields {
			var value interface{} = field.StringValue
			if field.RefValue != "" {
				value = map[string]interface{}{"ref": field.RefValue}
			}
			switch existing := entry[field.Key].(type) {
			case nil:
				entry[field.Key] = value
			case []interface{}:
				entry[field.Key] = append(existing, value)
			default:
				entry[field.Key] = []interface{}{existing, value}
			}
		}
		def.Objects = append(def.Objects, entry)
	}

	for _, p := range doc.Parameters {
		def.Parameters = append(def.Parameters, DefinitionParameter{
			ID:          p.ID,
			Type:        parameterType(p),
			Description: p.Description,
			Default:     p.Default,
		})
	}

	return def
}

// CloudFormationTemplate is the stack template layout
type CloudFormationTemplate struct {
	AWSTemplateFormatVersion string                             `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                             `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]CloudFormationParameter `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]CloudFormationResource  `json:"Resources" yaml:"Resources"`
}

// CloudFormationParameter is a stack parameter backing a pipeline parameter object
type CloudFormationParameter struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Type        string `json:"Type" yaml:"Type"`
	Default     string `json:"Default,omitempty" yaml:"Default,omitempty"`
}

// CloudFormationResource is the pipeline resource
type CloudFormationResource struct {
	Type       string             `json:"Type" yaml:"Type"`
	Properties PipelineProperties `json:"Properties" yaml:"Properties"`
}

// PipelineProperties are the properties of an AWS::DataPipeline::Pipeline resource
type PipelineProperties struct {
	Name             string            `json:"Name" yaml:"Name"`
	Description      string            `json:"Description,omitempty" yaml:"Description,omitempty"`
	PipelineTags     []PipelineTag     `json:"PipelineTags,omitempty" yaml:"PipelineTags,omitempty"`
	ParameterObjects []ParameterObject `json:"ParameterObjects,omitempty" yaml:"ParameterObjects,omitempty"`
	PipelineObjects  []CFNObject       `json:"PipelineObjects" yaml:"PipelineObjects"`
}

// PipelineTag is a key/value tag on the pipeline
type PipelineTag struct {
	Key   string `json:"Key" yaml:"Key"`
	Value string `json:"Value" yaml:"Value"`
}

// ParameterObject declares a pipeline parameter and its attributes
type ParameterObject struct {
	ID         string               `json:"Id" yaml:"Id"`
	Attributes []ParameterAttribute `json:"Attributes" yaml:"Attributes"`
}

// ParameterAttribute is a parameter attribute; StringValue is a string or a {"Ref": name} intrinsic
type ParameterAttribute struct {
	Key         string      `json:"Key" yaml:"Key"`
	StringValue interface{} `json:"StringValue" yaml:"StringValue"`
}

// CFNObject is a pipeline object in CloudFormation casing
type CFNObject struct {
	ID     string     `json:"Id" yaml:"Id"`
	Name   string     `json:"Name" yaml:"Name"`
	Fields []CFNField `json:"Fields" yaml:"Fields"`
}

// CFNField is a pipeline object field in CloudFormation casing
type CFNField struct {
	Key         string `json:"Key" yaml:"Key"`
	StringValue string `json:"StringValue,omitempty" yaml:"StringValue,omitempty"`
	RefValue    string `json:"RefValue,omitempty" yaml:"RefValue,omitempty"`
}

// BuildCloudFormation converts a document into a CloudFormation stack template
func BuildCloudFormation(doc *model.PipelineDocument) *CloudFormationTemplate {
	props := PipelineProperties{
		Name:        pipelineName(doc),
		Description: doc.Description,
	}

	tagKeys := make([]string, 0, len(doc.Tags))
	for k := range doc.Tags {
		tagKeys = append(tagKeys, k)
	}
	sort.Strings(tagKeys)
	for _, k := range tagKeys {
		props.PipelineTags = append(props.PipelineTags, PipelineTag{Key: k, Value: doc.Tags[k]})
	}

	var params map[string]CloudFormationParameter
	for _, p := range doc.Parameters {
		if params == nil {
			params = make(map[string]CloudFormationParameter)
		}
		name := p.Name
		if name == "" {
			name = logicalID(p.ID)
		}
		params[name] = CloudFormationParameter{
			Description: p.Description,
			Type:        "String",
			Default:     p.Default,
		}
		props.ParameterObjects = append(props.ParameterObjects, ParameterObject{
			ID: p.ID,
			Attributes: []ParameterAttribute{
				{Key: "type", StringValue: parameterType(p)},
				{Key: "description", StringValue: p.Description},
				{Key: "default", StringValue: map[string]string{"Ref": name}},
			},
		})
	}

	for _, obj := range doc.Objects() {
		cfnObj := CFNObject{ID: obj.ID, Name: obj.Name, Fields: make([]CFNField, 0, len(obj.Fields))}
		for _, field := range obj.Fields {
			cfnObj.Fields = append(cfnObj.Fields, CFNField(field))
		}
		props.PipelineObjects = append(props.PipelineObjects, cfnObj)
	}

	return &CloudFormationTemplate{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              stackDescription(doc),
		Parameters:               params,
		Resources: map[string]CloudFormationResource{
			logicalID(pipelineName(doc)) + "Pipeline": {
				Type:       "AWS::DataPipeline::Pipeline",
				Properties: props,
			},
		},
	}
}

// Build converts a document into the requested layout
func Build(doc *model.PipelineDocument, layout Layout) (interface{}, error) {
	switch layout {
	case "", LayoutDefinition:
		return BuildDefinition(doc), nil
	case LayoutCloudFormation:
		return BuildCloudFormation(doc), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", layout)
	}
}

// RenderJSON renders the document as indented JSON in the given layout
func RenderJSON(doc *model.PipelineDocument, layout Layout) ([]byte, error) {
	out, err := Build(doc, layout)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RenderYAML renders the document as YAML in the given layout
func RenderYAML(doc *model.PipelineDocument, layout Layout) ([]byte, error) {
	out, err := Build(doc, layout)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(out)
}

// WriteDocument writes the document to path (JSON or YAML based on extension)
func WriteDocument(doc *model.PipelineDocument, layout Layout, path string) error {
	var data []byte
	var err error

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = RenderYAML(doc, layout)
	default:
		data, err = RenderJSON(doc, layout)
	}
	if err != nil {
		return fmt.Errorf("failed to render pipeline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write pipeline to %s: %w", path, err)
	}

	return nil
}

func parameterType(p model.Parameter) string {
	if p.Type == "" {
		return "String"
	}
	return p.Type
}

func pipelineName(doc *model.PipelineDocument) string {
	if doc.Name == "" {
		return "export"
	}
	return doc.Name
}

func stackDescription(doc *model.PipelineDocument) string {
	if doc.Description != "" {
		return doc.Description + " CloudFormation Stack"
	}
	return ""
}

// logicalID turns "ethereum-etl" into "EthereumEtl" for CloudFormation logical names
func logicalID(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
