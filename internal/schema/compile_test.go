package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-recommender/internal/types"
)

func TestCompileBaseOnly(t *testing.T) {
	s, err := Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, 15, s.Len())

	rec, ok := s.Lookup(types.FieldRecommendation)
	require.True(t, ok)
	assert.Equal(t, TypeEnum, rec.Type)
	assert.Equal(t, []string{"Hire", "Consider", "Pass"}, rec.EnumValues)
	assert.True(t, rec.Required)

	overall, ok := s.Lookup(types.FieldOverallScore)
	require.True(t, ok)
	assert.Equal(t, TypeFloat, overall.Type)
	require.NotNil(t, overall.Range)
	assert.Equal(t, 1.0, overall.Range.Min)
	assert.Equal(t, 5.0, overall.Range.Max)

	considerations, ok := s.Lookup(types.FieldCustomConsiderations)
	require.True(t, ok)
	assert.Equal(t, TypeConsiderationList, considerations.Type)
}

func TestCompileInjectsTriplePerDescriptor(t *testing.T) {
	s, err := Compile([]types.FieldDescriptor{
		{Name: "gpa", Kind: types.KindFloat},
	})
	require.NoError(t, err)
	assert.Equal(t, 18, s.Len())

	value, ok := s.Lookup("gpa")
	require.True(t, ok)
	assert.Equal(t, TypeFloat, value.Type)
	assert.True(t, value.Required)

	score, ok := s.Lookup("gpa_score")
	require.True(t, ok)
	assert.Equal(t, TypeFloat, score.Type)
	assert.False(t, score.Required, "custom score companions are optional")
	require.NotNil(t, score.Range)
	assert.Equal(t, ScoreRange, *score.Range)

	explanation, ok := s.Lookup("gpa_explanation")
	require.True(t, ok)
	assert.Equal(t, TypeString, explanation.Type)
	assert.False(t, explanation.Required)
}

func TestCompileDescriptorKinds(t *testing.T) {
	tests := []struct {
		name         string
		descriptor   types.FieldDescriptor
		expectedType AttributeType
		expectedEnum []string
	}{
		{"String kind", types.FieldDescriptor{Name: "summary", Kind: types.KindString}, TypeString, nil},
		{"Integer kind", types.FieldDescriptor{Name: "publications", Kind: types.KindInteger}, TypeInteger, nil},
		{"Float kind", types.FieldDescriptor{Name: "gpa", Kind: types.KindFloat}, TypeFloat, nil},
		{"Boolean kind", types.FieldDescriptor{Name: "relocation", Kind: types.KindBoolean}, TypeBoolean, nil},
		{
			"Enum kind with values",
			types.FieldDescriptor{Name: "university_tier", Kind: types.KindEnum, EnumValues: []string{"Tier 1", "Tier 2"}},
			TypeEnum, []string{"Tier 1", "Tier 2"},
		},
		{"Enum kind without values falls back to string", types.FieldDescriptor{Name: "region", Kind: types.KindEnum}, TypeString, nil},
		{"Unrecognized kind falls back to string", types.FieldDescriptor{Name: "misc", Kind: "datetime"}, TypeString, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile([]types.FieldDescriptor{tt.descriptor})
			require.NoError(t, err)

			spec, ok := s.Lookup(tt.descriptor.Name)
			require.True(t, ok)
			assert.Equal(t, tt.expectedType, spec.Type)
			assert.Equal(t, tt.expectedEnum, spec.EnumValues)
		})
	}
}

func TestCompileRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []types.FieldDescriptor
		dupName     string
	}{
		{
			"Collision with base attribute",
			[]types.FieldDescriptor{{Name: "recommendation", Kind: types.KindString}},
			"recommendation",
		},
		{
			"Collision with base score attribute",
			[]types.FieldDescriptor{{Name: "overall_score", Kind: types.KindFloat}},
			"overall_score",
		},
		{
			"Collision between descriptors",
			[]types.FieldDescriptor{
				{Name: "gpa", Kind: types.KindFloat},
				{Name: "gpa", Kind: types.KindString},
			},
			"gpa",
		},
		{
			"Collision via generated companion name",
			[]types.FieldDescriptor{
				{Name: "gpa_score", Kind: types.KindFloat},
				{Name: "gpa", Kind: types.KindFloat},
			},
			"gpa_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.descriptors)
			assert.Nil(t, s)

			var schemaErr *Error
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, ReasonDuplicateName, schemaErr.Reason)
			assert.Equal(t, tt.dupName, schemaErr.Name)
		})
	}
}

func TestCompileOrderIsDeterministic(t *testing.T) {
	descriptors := []types.FieldDescriptor{
		{Name: "gpa", Kind: types.KindFloat},
		{Name: "publications", Kind: types.KindInteger},
	}

	s, err := Compile(descriptors)
	require.NoError(t, err)

	attrs := s.Attributes()
	names := make([]string, 0, 6)
	for _, a := range attrs[15:] {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"gpa", "gpa_score", "gpa_explanation",
		"publications", "publications_score", "publications_explanation",
	}, names)
}

func TestCompileDoesNotMutateDescriptors(t *testing.T) {
	enumVals := []string{"A", "B"}
	descriptors := []types.FieldDescriptor{
		{Name: "tier", Kind: types.KindEnum, EnumValues: enumVals},
	}

	s, err := Compile(descriptors)
	require.NoError(t, err)

	spec, _ := s.Lookup("tier")
	spec.EnumValues[0] = "mutated"
	assert.Equal(t, "A", enumVals[0], "compiled schema must hold its own copy of enum values")
}
