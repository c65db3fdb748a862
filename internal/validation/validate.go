package validation

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jonathan/resume-recommender/internal/schema"
	"github.com/jonathan/resume-recommender/internal/types"
)

// considerationFields are the required sub-fields of every consideration
// element, in declaration order.
var considerationFields = []string{"field", "instruction", "applied", "impact"}

// Validate checks mapping against the compiled schema and returns an immutable
// record on success. The validator operates in strict mode: unknown keys are
// rejected rather than silently dropped, because stray model output defeats
// the purpose of structured extraction. All defects are collected before
// returning; no partial record is ever produced.
func Validate(mapping map[string]any, s *schema.RecordSchema) (*types.Record, error) {
	var errs []FieldError

	// Unknown keys first, in sorted order so diagnostics are deterministic.
	unknown := make([]string, 0)
	for key := range mapping {
		if _, ok := s.Lookup(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, FieldError{Code: Unexpected, Field: key})
	}

	values := make(map[string]any, s.Len())
	for _, spec := range s.Attributes() {
		raw, present := mapping[spec.Name]
		if !present {
			if spec.Required {
				errs = append(errs, FieldError{Code: Missing, Field: spec.Name})
			}
			continue
		}

		value, fieldErrs := coerce(spec, raw, spec.Name)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		values[spec.Name] = value
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return types.NewRecord(values), nil
}

// coerce converts one raw attribute value to its validated Go representation.
func coerce(spec schema.AttributeSpec, raw any, path string) (any, []FieldError) {
	switch spec.Type {
	case schema.TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, []FieldError{mismatch(path, spec.Type.String(), raw)}
		}
		return s, nil

	case schema.TypeFloat:
		f, ok := asFloat(raw)
		if !ok {
			return nil, []FieldError{mismatch(path, spec.Type.String(), raw)}
		}
		if spec.Range != nil && (f < spec.Range.Min || f > spec.Range.Max) {
			return nil, []FieldError{{Code: OutOfRange, Field: path, Value: f, Bounds: spec.Range}}
		}
		return f, nil

	case schema.TypeInteger:
		i, ok := asInt(raw)
		if !ok {
			return nil, []FieldError{mismatch(path, spec.Type.String(), raw)}
		}
		if spec.Range != nil && (float64(i) < spec.Range.Min || float64(i) > spec.Range.Max) {
			return nil, []FieldError{{Code: OutOfRange, Field: path, Value: i, Bounds: spec.Range}}
		}
		return i, nil

	case schema.TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, []FieldError{mismatch(path, spec.Type.String(), raw)}
		}
		return b, nil

	case schema.TypeEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, []FieldError{mismatch(path, "string", raw)}
		}
		for _, allowed := range spec.EnumValues {
			if s == allowed {
				return s, nil
			}
		}
		return nil, []FieldError{{Code: InvalidEnum, Field: path, Value: s, Allowed: spec.EnumValues}}

	case schema.TypeStringList:
		items, ok := raw.([]any)
		if !ok {
			return nil, []FieldError{mismatch(path, spec.Type.String(), raw)}
		}
		out := make([]string, 0, len(items))
		var errs []FieldError
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				errs = append(errs, mismatch(fmt.Sprintf("%s[%d]", path, i), "string", item))
				continue
			}
			out = append(out, s)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil

	case schema.TypeConsiderationList:
		return coerceConsiderations(raw, path)

	default:
		return nil, []FieldError{mismatch(path, "unknown", raw)}
	}
}

// coerceConsiderations validates each element as a nested record with all four
// sub-fields required, scoping errors with an index path.
func coerceConsiderations(raw any, path string) (any, []FieldError) {
	items, ok := raw.([]any)
	if !ok {
		return nil, []FieldError{mismatch(path, "list of considerations", raw)}
	}

	out := make([]types.Consideration, 0, len(items))
	var errs []FieldError
	for i, item := range items {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		m, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, mismatch(elemPath, "object", item))
			continue
		}

		elemErrs := validateConsiderationKeys(m, elemPath)

		c := types.Consideration{}
		if v, present := m["field"]; present {
			if s, ok := v.(string); ok {
				c.Field = s
			} else {
				elemErrs = append(elemErrs, mismatch(elemPath+".field", "string", v))
			}
		}
		if v, present := m["instruction"]; present {
			if s, ok := v.(string); ok {
				c.Instruction = s
			} else {
				elemErrs = append(elemErrs, mismatch(elemPath+".instruction", "string", v))
			}
		}
		if v, present := m["applied"]; present {
			if b, ok := v.(bool); ok {
				c.Applied = b
			} else {
				elemErrs = append(elemErrs, mismatch(elemPath+".applied", "boolean", v))
			}
		}
		if v, present := m["impact"]; present {
			if s, ok := v.(string); ok {
				c.Impact = s
			} else {
				elemErrs = append(elemErrs, mismatch(elemPath+".impact", "string", v))
			}
		}

		if len(elemErrs) > 0 {
			errs = append(errs, elemErrs...)
			continue
		}
		out = append(out, c)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// validateConsiderationKeys reports missing required sub-fields and unexpected
// extra keys for one consideration element.
func validateConsiderationKeys(m map[string]any, elemPath string) []FieldError {
	var errs []FieldError
	for _, name := range considerationFields {
		if _, present := m[name]; !present {
			errs = append(errs, FieldError{Code: Missing, Field: elemPath + "." + name})
		}
	}

	extra := make([]string, 0)
	for key := range m {
		known := false
		for _, name := range considerationFields {
			if key == name {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		errs = append(errs, FieldError{Code: Unexpected, Field: elemPath + "." + key})
	}
	return errs
}

// mismatch builds a TypeMismatch error with a JSON-level description of the
// value actually seen.
func mismatch(path, expected string, got any) FieldError {
	return FieldError{Code: TypeMismatch, Field: path, Expected: expected, Got: jsonTypeName(got)}
}

// asFloat accepts json.Number and native float64 values.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// asInt accepts json.Number and native integer values. Fractional numbers are
// accepted only when integral (4.0 → 4).
func asInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// jsonTypeName describes a decoded JSON value for diagnostics.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
