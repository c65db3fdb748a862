package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceSmartQuotes(t *testing.T) {
	assert.Equal(t, `{"note": "it's fine"}`, ReplaceSmartQuotes("{“note”: “it’s fine”}"))
}

func TestStripControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Removes C0 controls", "a\x00b\x01c\x1fd", "abcd"},
		{"Keeps allowed whitespace", "a\nb\tc\rd", "a\nb\tc\rd"},
		{"Removes DEL and C1 range", "a\x7fbc", "abc"},
		{"Plain text untouched", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripControlChars(tt.input))
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", NormalizeNewlines("a\r\nb\rc\n"))
}

func TestCommaRepairs(t *testing.T) {
	tests := []struct {
		name      string
		transform func(string) string
		input     string
		expected  string
	}{
		{"Trailing comma before brace", RemoveTrailingCommas, `{"a": 1,}`, `{"a": 1}`},
		{"Trailing comma before bracket", RemoveTrailingCommas, `{"a": [1, 2,]}`, `{"a": [1, 2]}`},
		{"Trailing comma with whitespace", RemoveTrailingCommas, "{\"a\": 1, \n}", "{\"a\": 1 \n}"},
		{"Leading comma after brace", RemoveLeadingCommas, `{, "a": 1}`, `{ "a": 1}`},
		{"Leading comma after bracket", RemoveLeadingCommas, `{"a": [, 1]}`, `{"a": [ 1]}`},
		{"Comma run collapsed", CollapseCommaRuns, `{"a": 1,,, "b": 2}`, `{"a": 1, "b": 2}`},
		{"Comma run with whitespace", CollapseCommaRuns, `{"a": 1, , "b": 2}`, `{"a": 1, "b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.transform(tt.input))
		})
	}
}

func TestQuoteBareKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bare keys quoted", `{name: "A", overall_score: 4}`, `{"name": "A", "overall_score": 4}`},
		{"Quoted keys untouched", `{"name": "A"}`, `{"name": "A"}`},
		{"Colon inside string value untouched", `{"note": "ratio 3:1"}`, `{"note": "ratio 3:1"}`},
		{"Mixed quoting", `{"a": 1, b: 2}`, `{"a": 1, "b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteBareKeys(tt.input))
		})
	}
}

func TestLowercaseBooleans(t *testing.T) {
	input := `{"applied": True, "active": False, "note": "True story"}`
	expected := `{"applied": true, "active": false, "note": "True story"}`
	assert.Equal(t, expected, LowercaseBooleans(input))
}

func TestQuoteBareArrayScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bare word quoted", `{"a": [strong communicator]}`, `{"a": ["strong communicator"]}`},
		{"Number array untouched", `{"a": [42]}`, `{"a": [42]}`},
		{"Boolean array untouched", `{"a": [true]}`, `{"a": [true]}`},
		{"Quoted array untouched", `{"a": ["x"]}`, `{"a": ["x"]}`},
		{"Nested array untouched", `{"a": [[1], [2]]}`, `{"a": [[1], [2]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteBareArrayScalars(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	input := "{name: “A”,, tags: [\"x\",],\x01 applied: True,}"
	once := Normalize(input, false)
	twice := Normalize(once, false)
	assert.Equal(t, once, twice)
}

func TestNormalizeFullPass(t *testing.T) {
	input := "{candidate: “Ada”, applied: True, \"tags\": [\"x\", \"y\",],}"
	expected := `{"candidate": "Ada", "applied": true, "tags": ["x", "y"]}`
	assert.Equal(t, expected, Normalize(input, false))
}
