// Package types provides type definitions for structured data used throughout the resume-recommender system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Descriptor kinds supported for caller-defined evaluation fields.
const (
	KindString  = "string"
	KindInteger = "integer"
	KindFloat   = "float"
	KindBoolean = "boolean"
	KindEnum    = "enum"
)

// DefaultGuidance is applied when a descriptor is registered without guidance text.
const DefaultGuidance = "If relevant, set <field>_score (1-5) with one-sentence explanation referencing resume evidence."

// FieldDescriptor is a caller-supplied specification of one additional
// evaluation attribute. It is pure data and is never mutated by the engine.
type FieldDescriptor struct {
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Kind       string   `json:"kind" yaml:"kind" validate:"required,oneof=string integer float boolean enum"`
	EnumValues []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty" validate:"required_if=Kind enum"`
	Guidance   string   `json:"guidance,omitempty" yaml:"guidance,omitempty"`
}

// GuidanceOrDefault returns the descriptor's guidance text, falling back to
// DefaultGuidance when none was supplied.
func (d FieldDescriptor) GuidanceOrDefault() string {
	if d.Guidance == "" {
		return DefaultGuidance
	}
	return d.Guidance
}

// ScoreField returns the name of the descriptor's companion score attribute.
func (d FieldDescriptor) ScoreField() string {
	return d.Name + "_score"
}

// ExplanationField returns the name of the descriptor's companion explanation attribute.
func (d FieldDescriptor) ExplanationField() string {
	return d.Name + "_explanation"
}

// Consideration asserts whether one descriptor's guidance was applied during
// evaluation and with what effect on the scores.
type Consideration struct {
	Field       string `json:"field"`
	Instruction string `json:"instruction"`
	Applied     bool   `json:"applied"`
	Impact      string `json:"impact"`
}
