package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldDescriptorCompanionNames(t *testing.T) {
	d := FieldDescriptor{Name: "gpa", Kind: KindFloat}
	assert.Equal(t, "gpa_score", d.ScoreField())
	assert.Equal(t, "gpa_explanation", d.ExplanationField())
}

func TestGuidanceOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		guidance string
		expected string
	}{
		{"Empty guidance uses default", "", DefaultGuidance},
		{"Explicit guidance kept", "If GPA < 3.0, score below 2.", "If GPA < 3.0, score below 2."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FieldDescriptor{Name: "gpa", Kind: KindFloat, Guidance: tt.guidance}
			assert.Equal(t, tt.expected, d.GuidanceOrDefault())
		})
	}
}

func TestRecommendationValues(t *testing.T) {
	assert.Equal(t, []string{"Hire", "Consider", "Pass"}, RecommendationValues())
}
