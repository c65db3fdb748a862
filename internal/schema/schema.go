// Package schema compiles caller-supplied field descriptors into the record
// schema that evaluation output must satisfy. The schema is an explicit
// description object walked by the validator; no run-time code generation.
package schema

import (
	"github.com/jonathan/resume-recommender/internal/types"
)

// AttributeType identifies the value type of one schema attribute.
type AttributeType int

// Attribute type variants.
const (
	TypeString AttributeType = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeEnum
	TypeStringList
	TypeConsiderationList
)

// String returns a human-readable name for the attribute type, used in
// validation diagnostics.
func (t AttributeType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeEnum:
		return "enum"
	case TypeStringList:
		return "list of strings"
	case TypeConsiderationList:
		return "list of considerations"
	}
	return "unknown"
}

// Range bounds a numeric attribute inclusively.
type Range struct {
	Min float64
	Max float64
}

// ScoreRange is the bound for every score attribute, base and custom.
var ScoreRange = Range{Min: 1, Max: 5}

// AttributeSpec describes one attribute of a record schema.
type AttributeSpec struct {
	Name       string
	Type       AttributeType
	EnumValues []string // populated iff Type == TypeEnum
	Required   bool
	Range      *Range // populated for bounded numeric attributes
}

// RecordSchema is an ordered set of attribute specifications. Order follows
// declaration: base attributes first, then descriptor attributes in
// registration order.
type RecordSchema struct {
	attrs []AttributeSpec
	index map[string]int
}

// newRecordSchema builds a schema from an ordered attribute list. The caller
// guarantees name uniqueness.
func newRecordSchema(attrs []AttributeSpec) *RecordSchema {
	index := make(map[string]int, len(attrs))
	for i, a := range attrs {
		index[a.Name] = i
	}
	return &RecordSchema{attrs: attrs, index: index}
}

// Attributes returns the attribute specifications in schema order.
func (s *RecordSchema) Attributes() []AttributeSpec {
	out := make([]AttributeSpec, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Lookup returns the specification for an attribute name.
func (s *RecordSchema) Lookup(name string) (AttributeSpec, bool) {
	if i, ok := s.index[name]; ok {
		return s.attrs[i], true
	}
	return AttributeSpec{}, false
}

// Len returns the number of attributes in the schema.
func (s *RecordSchema) Len() int {
	return len(s.attrs)
}

// baseAttributes returns the fixed attribute set present in every compiled
// schema. Base scores are required; only custom-field companions are optional.
func baseAttributes() []AttributeSpec {
	score := ScoreRange
	return []AttributeSpec{
		{Name: types.FieldKeyStrengths, Type: TypeStringList, Required: true},
		{Name: types.FieldKeyStrengthsScore, Type: TypeFloat, Required: true, Range: &score},
		{Name: types.FieldKeyStrengthsExplanation, Type: TypeString, Required: true},
		{Name: types.FieldExperienceScore, Type: TypeFloat, Required: true, Range: &score},
		{Name: types.FieldExperienceExplanation, Type: TypeString, Required: true},
		{Name: types.FieldSkillsMatchScore, Type: TypeFloat, Required: true, Range: &score},
		{Name: types.FieldSkillsMatchExplanation, Type: TypeString, Required: true},
		{Name: types.FieldPotentialConcerns, Type: TypeStringList, Required: true},
		{Name: types.FieldRecommendation, Type: TypeEnum, EnumValues: types.RecommendationValues(), Required: true},
		{Name: types.FieldCandidateName, Type: TypeString, Required: true},
		{Name: types.FieldJobTitle, Type: TypeString, Required: true},
		{Name: types.FieldDepartment, Type: TypeString, Required: true},
		{Name: types.FieldOverallScore, Type: TypeFloat, Required: true, Range: &score},
		{Name: types.FieldOverallExplanation, Type: TypeString, Required: true},
		{Name: types.FieldCustomConsiderations, Type: TypeConsiderationList, Required: true},
	}
}
