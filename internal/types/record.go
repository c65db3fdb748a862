package types

// Base attribute names shared by every compiled schema.
const (
	FieldKeyStrengths            = "key_strengths"
	FieldKeyStrengthsScore       = "key_strengths_score"
	FieldKeyStrengthsExplanation = "key_strengths_explanation"
	FieldExperienceScore         = "experience_score"
	FieldExperienceExplanation   = "experience_explanation"
	FieldSkillsMatchScore        = "skills_match_score"
	FieldSkillsMatchExplanation  = "skills_match_explanation"
	FieldPotentialConcerns       = "potential_concerns"
	FieldRecommendation          = "recommendation"
	FieldCandidateName           = "candidate_name"
	FieldJobTitle                = "job_title"
	FieldDepartment              = "department"
	FieldOverallScore            = "overall_score"
	FieldOverallExplanation      = "overall_explanation"
	FieldCustomConsiderations    = "custom_considerations"
)

// Recommendation labels (the closed enumeration for the recommendation attribute).
const (
	RecommendationHire     = "Hire"
	RecommendationConsider = "Consider"
	RecommendationPass     = "Pass"
)

// RecommendationValues returns the allowed recommendation labels in declaration order.
func RecommendationValues() []string {
	return []string{RecommendationHire, RecommendationConsider, RecommendationPass}
}

// Record is the validated output of one document's evaluation: a key→value
// mapping conforming exactly to a compiled schema. Records are created only by
// the validator and are immutable thereafter.
type Record struct {
	values map[string]any
}

// NewRecord builds a Record from an already-validated mapping. The mapping is
// copied so later mutation of the argument cannot affect the Record.
func NewRecord(values map[string]any) *Record {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Record{values: copied}
}

// Get returns the value for an attribute and whether it was present.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether an attribute is present.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// String returns the string value for an attribute, or "" when absent or not a string.
func (r *Record) String(name string) string {
	if s, ok := r.values[name].(string); ok {
		return s
	}
	return ""
}

// Float returns the numeric value for an attribute, or 0 when absent.
// Integer-kind values stored as int64 are widened.
func (r *Record) Float(name string) float64 {
	switch v := r.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Int returns the integer value for an attribute, or 0 when absent.
func (r *Record) Int(name string) int64 {
	switch v := r.values[name].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Bool returns the boolean value for an attribute, or false when absent.
func (r *Record) Bool(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

// Strings returns the string-list value for an attribute, or nil when absent.
func (r *Record) Strings(name string) []string {
	v, _ := r.values[name].([]string)
	return v
}

// Considerations returns the custom_considerations list, one entry per
// registered descriptor.
func (r *Record) Considerations() []Consideration {
	v, _ := r.values[FieldCustomConsiderations].([]Consideration)
	return v
}

// CandidateName returns the extracted candidate name.
func (r *Record) CandidateName() string { return r.String(FieldCandidateName) }

// Recommendation returns the Hire/Consider/Pass label.
func (r *Record) Recommendation() string { return r.String(FieldRecommendation) }

// OverallScore returns the model-provided overall score in [1,5].
func (r *Record) OverallScore() float64 { return r.Float(FieldOverallScore) }

// Map returns a copy of the underlying mapping, suitable for serialization.
func (r *Record) Map() map[string]any {
	copied := make(map[string]any, len(r.values))
	for k, v := range r.values {
		copied[k] = v
	}
	return copied
}
