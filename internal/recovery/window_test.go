package recovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairWindowOnlyTouchesNeighborhood(t *testing.T) {
	// A control character near the reported position is stripped; an identical
	// defect far outside the window is preserved.
	prefix := `{"a": "` + strings.Repeat("x", 200) + "\x01" + `"`
	s := `{"bad` + "\x01" + `": 1}` + prefix
	repaired := RepairWindow(s, 5)

	assert.NotContains(t, repaired[:20], "\x01")
	assert.Contains(t, repaired[20:], "\x01", "defects outside the window must be left alone")
}

func TestRepairWindowFixesTrailingComma(t *testing.T) {
	s := `{"a": 1,}`
	assert.Equal(t, `{"a": 1}`, RepairWindow(s, 8))
}

func TestRepairWindowQuotesBareKeyAtPosition(t *testing.T) {
	s := `{"a": 1, score: 4}`
	assert.Equal(t, `{"a": 1, "score": 4}`, RepairWindow(s, 9))
}

func TestRepairWindowClampsPosition(t *testing.T) {
	tests := []struct {
		name string
		pos  int64
	}{
		{"Negative position", -5},
		{"Position past end", 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := `{"a": 1,}`
			// Must not panic; window is clamped to the text bounds.
			out := RepairWindow(s, tt.pos)
			assert.NotEmpty(t, out)
		})
	}
}

func TestRepairWindowEmptyInput(t *testing.T) {
	assert.Equal(t, "", RepairWindow("", 0))
}
