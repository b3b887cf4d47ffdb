package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	pipelineSchemaPath   = "schemas/pipeline.schema.json"
	definitionSchemaPath = "schemas/definition.schema.json"
)

// Validator handles JSON schema validation
type Validator struct {
	pipelineSchema   *jsonschema.Schema
	definitionSchema *jsonschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	v := &Validator{}

	pipelineSchema, err := loadSchema(pipelineSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline schema: %w", err)
	}
	v.pipelineSchema = pipelineSchema

	definitionSchema, err := loadSchema(definitionSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition schema: %w", err)
	}
	v.definitionSchema = definitionSchema

	return v, nil
}

// ValidatePipelineConfig validates a raw pipeline config document (YAML or JSON bytes)
func (v *Validator) ValidatePipelineConfig(data []byte) error {
	doc, err := toJSONValue(data)
	if err != nil {
		return fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	return v.pipelineSchema.Validate(doc)
}

// ValidateDefinition validates a rendered pipeline definition (any JSON-marshalable value)
func (v *Validator) ValidateDefinition(definition interface{}) error {
	data, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}
	doc, err := decodeJSON(data)
	if err != nil {
		return err
	}
	return v.definitionSchema.Validate(doc)
}

// loadSchema loads and compiles an embedded schema file
func loadSchema(path string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	url := "embedded://" + path
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return schema, nil
}

// toJSONValue parses YAML (a superset of JSON) and converts it into the
// value shapes the schema validator expects.
func toJSONValue(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return decodeJSON(jsonData)
}

func decodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return doc, nil
}
