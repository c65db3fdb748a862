// Package descriptors loads caller-defined evaluation field descriptors from
// JSON or YAML configuration files. File shape is checked against an embedded
// JSON Schema before decoding, then each descriptor is struct-validated, so a
// malformed registry file is rejected before any document is processed.
package descriptors

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-recommender/internal/types"
)

//go:embed descriptors.schema.json
var schemaDoc string

var validate = validator.New()

// File is the on-disk shape of a descriptor registry file.
type File struct {
	Fields []types.FieldDescriptor `json:"fields" yaml:"fields"`
}

// LoadError represents a failure to read or validate a registry file.
type LoadError struct {
	Path    string
	Message string
	Details []string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("descriptor registry %s: %s", e.Path, e.Message)
	if len(e.Details) > 0 {
		msg += ": " + strings.Join(e.Details, "; ")
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads descriptor definitions from a JSON (.json) or YAML (.yaml/.yml)
// file. Descriptors are returned in file order with default guidance applied.
func Load(path string) ([]types.FieldDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data, path)
	default:
		return ParseJSON(data, path)
	}
}

// ParseJSON decodes and validates a JSON registry document. The path argument
// is used only for error reporting.
func ParseJSON(data []byte, path string) ([]types.FieldDescriptor, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaDoc),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse JSON", Cause: err}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			details = append(details, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, &LoadError{Path: path, Message: "schema validation failed", Details: details}
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode descriptors", Cause: err}
	}

	return finalize(file, path)
}

// ParseYAML decodes a YAML registry document by converting it to JSON and
// validating through the same schema path as ParseJSON.
func ParseYAML(data []byte, path string) ([]types.FieldDescriptor, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse YAML", Cause: err}
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to convert YAML to JSON", Cause: err}
	}

	return ParseJSON(jsonData, path)
}

// finalize struct-validates each descriptor and applies default guidance.
func finalize(file File, path string) ([]types.FieldDescriptor, error) {
	out := make([]types.FieldDescriptor, 0, len(file.Fields))
	for i, d := range file.Fields {
		if err := validate.Struct(d); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: fmt.Sprintf("invalid descriptor %q (index %d)", d.Name, i),
				Cause:   err,
			}
		}
		d.Guidance = d.GuidanceOrDefault()
		out = append(out, d)
	}
	return out, nil
}
