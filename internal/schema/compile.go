package schema

import (
	"github.com/jonathan/resume-recommender/internal/types"
)

// Compile composes the base attribute set with one value/score/explanation
// triple per descriptor, producing the schema an evaluation record must
// satisfy. It is a pure function of its inputs.
//
// Descriptor value types follow the descriptor kind; enum descriptors without
// values and descriptors of unrecognized kind fall back to free string capture
// rather than failing. Score and explanation companions for custom attributes
// are always optional, unlike the required base scores, so that "the model
// didn't score this field" is distinguishable from "the model failed to
// produce required output".
//
// A descriptor whose name collides with a base attribute or with another
// descriptor (including its generated companions) yields
// *Error{ReasonDuplicateName}.
func Compile(descriptors []types.FieldDescriptor) (*RecordSchema, error) {
	attrs := baseAttributes()
	seen := make(map[string]bool, len(attrs)+3*len(descriptors))
	for _, a := range attrs {
		seen[a.Name] = true
	}

	score := ScoreRange
	for _, d := range descriptors {
		triple := []AttributeSpec{
			descriptorValueSpec(d),
			{Name: d.ScoreField(), Type: TypeFloat, Required: false, Range: &score},
			{Name: d.ExplanationField(), Type: TypeString, Required: false},
		}
		for _, a := range triple {
			if seen[a.Name] {
				return nil, &Error{Reason: ReasonDuplicateName, Name: a.Name}
			}
			seen[a.Name] = true
			attrs = append(attrs, a)
		}
	}

	return newRecordSchema(attrs), nil
}

// descriptorValueSpec derives the typed value attribute for one descriptor.
func descriptorValueSpec(d types.FieldDescriptor) AttributeSpec {
	spec := AttributeSpec{Name: d.Name, Required: true}
	switch d.Kind {
	case types.KindInteger:
		spec.Type = TypeInteger
	case types.KindFloat:
		spec.Type = TypeFloat
	case types.KindBoolean:
		spec.Type = TypeBoolean
	case types.KindEnum:
		if len(d.EnumValues) > 0 {
			spec.Type = TypeEnum
			spec.EnumValues = append([]string(nil), d.EnumValues...)
		} else {
			spec.Type = TypeString
		}
	default:
		// string and anything unrecognized: best-effort string capture.
		spec.Type = TypeString
	}
	return spec
}
