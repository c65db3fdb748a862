package recovery

import (
	"encoding/json"
	"errors"
	"strings"
)

// Options bounds how aggressively the pipeline repairs text. The caller
// derives them from its schema's structural expectations; the pipeline itself
// never knows individual field names.
type Options struct {
	// AggressiveArrayQuoting enables the bare-array-scalar rewrite during the
	// normalization stage. It must stay off when the expected output contains
	// nested arrays or lists of records, which the rewrite would corrupt.
	AggressiveArrayQuoting bool
}

// Recover converts raw model output into a parsed mapping, trying stages in
// strictly increasing order of aggressiveness: bounded extraction, as-is
// parse, normalization pass, structural balancing, then localized repair
// around the reported error position. The first stage producing text that
// parses wins and all later stages are skipped. Every stage is a pure
// deterministic transform, so identical input always yields identical output.
func Recover(raw string, opts Options) (map[string]any, error) {
	span, found := ExtractObject(raw)
	if !found {
		return nil, &Error{Stage: StageExtract, Reason: ReasonNoStructureFound, Pos: -1}
	}

	// Well-formed output must come back untouched.
	if m, err := parseObject(span); err == nil {
		return m, nil
	}

	cleaned := Normalize(span, opts.AggressiveArrayQuoting)
	if m, err := parseObject(cleaned); err == nil {
		return m, nil
	}

	balanced := BalanceBrackets(cleaned)
	m, err := parseObject(balanced)
	if err == nil {
		return m, nil
	}

	stage := StageBalance
	last := balanced
	if pos, ok := errorOffset(err); ok {
		stage = StageWindow
		patched := RepairWindow(balanced, pos)
		m, winErr := parseObject(patched)
		if winErr == nil {
			return m, nil
		}
		err = winErr
		last = patched
	}

	pos, _ := errorOffset(err)
	return nil, &Error{
		Stage:   stage,
		Reason:  ReasonUnrecoverable,
		Pos:     pos,
		Cleaned: last,
		Cause:   err,
	}
}

// parseObject parses s as a single JSON object. Numbers are decoded as
// json.Number so the validator can distinguish integral from fractional
// values.
func parseObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// errorOffset extracts the byte offset from a JSON parse diagnostic.
func errorOffset(err error) (int64, bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Offset, true
	}
	return -1, false
}
