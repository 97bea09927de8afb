// Package schema validates configuration documents (search parameters, loader
// manifests) against embedded JSON Schema definitions using
// santhosh-tekuri/jsonschema/v5, matching the draft 2020-12 dialect.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Validator wraps a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a standalone schema document. schemaData must not
// contain external $refs outside of the standard JSON Schema vocabularies,
// since lexigraph ships no metaschema bundle.
func NewValidator(schemaData []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	const virtualURL = "mem://schema.json"
	if err := compiler.AddResource(virtualURL, strings.NewReader(string(schemaData))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(virtualURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateData validates an in-memory value and returns diagnostics.
func (v *Validator) ValidateData(data interface{}) ([]Diagnostic, error) {
	err := v.schema.Validate(data)
	if err == nil {
		return nil, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	return diagnosticsFromValidationError(validationErr, sourceLexigraph), nil
}

// ValidateJSON validates JSON bytes.
func (v *Validator) ValidateJSON(jsonData []byte) ([]Diagnostic, error) {
	var payload interface{}
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v.ValidateData(payload)
}

// ValidateFile validates a JSON or YAML file on disk.
func (v *Validator) ValidateFile(path string) ([]Diagnostic, error) {
	// #nosec G304 -- path comes from CLI flags/config, validation is the point
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isJSON(content) {
		return v.ValidateJSON(content)
	}
	var payload interface{}
	if err := yaml.Unmarshal(content, &payload); err != nil {
		return nil, err
	}
	return v.ValidateData(payload)
}

func isJSON(content []byte) bool {
	trimmed := strings.TrimSpace(string(content))
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
