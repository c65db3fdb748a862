// Package validation checks a recovered key→value mapping against a compiled
// record schema, producing either an immutable record or every field-level
// defect found in one pass.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-recommender/internal/schema"
)

// FieldErrorCode classifies a single field-level validation failure.
type FieldErrorCode string

// Field error codes.
const (
	// Unexpected means the mapping contains a key the schema does not declare.
	Unexpected FieldErrorCode = "unexpected"
	// Missing means a required attribute is absent from the mapping.
	Missing FieldErrorCode = "missing"
	// TypeMismatch means an attribute value has the wrong type.
	TypeMismatch FieldErrorCode = "type_mismatch"
	// OutOfRange means a numeric attribute falls outside its declared bounds.
	OutOfRange FieldErrorCode = "out_of_range"
	// InvalidEnum means an enum attribute value is not among the declared set.
	InvalidEnum FieldErrorCode = "invalid_enum"
)

// FieldError is a single validation failure at a specific field. Field carries
// an index path for nested elements (e.g. "custom_considerations[2].impact").
type FieldError struct {
	Code     FieldErrorCode
	Field    string
	Expected string        // populated for TypeMismatch
	Got      string        // populated for TypeMismatch
	Value    any           // populated for OutOfRange and InvalidEnum
	Bounds   *schema.Range // populated for OutOfRange
	Allowed  []string      // populated for InvalidEnum
}

// Message returns a human-readable description of the failure.
func (e FieldError) Message() string {
	switch e.Code {
	case Unexpected:
		return fmt.Sprintf("%s: unexpected field", e.Field)
	case Missing:
		return fmt.Sprintf("%s: required field is missing", e.Field)
	case TypeMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Got)
	case OutOfRange:
		return fmt.Sprintf("%s: value %v outside range [%g, %g]", e.Field, e.Value, e.Bounds.Min, e.Bounds.Max)
	case InvalidEnum:
		return fmt.Sprintf("%s: value %q not one of [%s]", e.Field, e.Value, strings.Join(e.Allowed, ", "))
	default:
		return fmt.Sprintf("%s: invalid", e.Field)
	}
}

// ValidationError aggregates every field-level failure found for one mapping,
// so a caller can report all problems in a single pass.
//
//nolint:revive // name matches the established error taxonomy
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Message()))
	}
	return sb.String()
}
