// Package recovery converts raw LLM output into a parsed key→value mapping
// through a sequence of deterministic repair stages, ordered from least to
// most destructive so well-formed output is never needlessly mangled.
package recovery

import "strings"

// ExtractObject locates the largest brace-enclosed span in raw text: from the
// first '{' to the last '}'. Text outside the span (markdown fences, prose,
// sign-offs) is discarded. When no closing brace follows the opener the span
// runs to the end of the text so the balancing stage can supply the closers.
//
// Returns false when the text contains no opening brace at all.
func ExtractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(raw, '}')
	if end <= start {
		return raw[start:], true
	}
	return raw[start : end+1], true
}
