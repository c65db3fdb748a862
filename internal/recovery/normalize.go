package recovery

import (
	"regexp"
	"strconv"
	"strings"
)

// Each transform below is a pure string→string function, idempotent on its own
// output. Normalize applies them cumulatively in the order declared; the order
// matters (e.g. bare-key quoting assumes commas have already been repaired).

var (
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	leadingCommaRe  = regexp.MustCompile(`([{\[])\s*,`)
	commaRunRe      = regexp.MustCompile(`,(\s*,)+`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trueLiteralRe   = regexp.MustCompile(`:\s*True\b`)
	falseLiteralRe  = regexp.MustCompile(`:\s*False\b`)
	bareArrayRe     = regexp.MustCompile(`\[\s*([^"\[\]{},]+?)\s*\]`)
)

// smartQuoteReplacer maps typographic quotation marks and apostrophes to their
// plain ASCII equivalents.
var smartQuoteReplacer = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // double low-9 quotation mark
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‚", "'", // single low-9 quotation mark
)

// ReplaceSmartQuotes rewrites typographic quotes and apostrophes to ASCII.
func ReplaceSmartQuotes(s string) string {
	return smartQuoteReplacer.Replace(s)
}

// StripControlChars removes non-printable control characters (C0 except
// \n, \r, \t, plus DEL and the C1 range) that LLMs occasionally leak into
// string values and that the JSON grammar forbids unescaped.
func StripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return r
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}

// NormalizeNewlines collapses carriage-return variants to a single line-feed
// convention.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// RemoveTrailingCommas drops a comma immediately preceding a closing brace or
// bracket.
func RemoveTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// RemoveLeadingCommas drops a comma immediately following an opening brace or
// bracket.
func RemoveLeadingCommas(s string) string {
	return leadingCommaRe.ReplaceAllString(s, "$1")
}

// CollapseCommaRuns reduces runs of consecutive commas to a single comma.
func CollapseCommaRuns(s string) string {
	return commaRunRe.ReplaceAllString(s, ",")
}

// QuoteBareKeys wraps unquoted identifier keys in double quotes
// (identifier: → "identifier":). Keys already quoted are left alone because
// the pattern requires the identifier to directly follow '{' or ','.
func QuoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
}

// LowercaseBooleans rewrites Python-style True/False value literals to JSON
// booleans.
func LowercaseBooleans(s string) string {
	s = trueLiteralRe.ReplaceAllString(s, ": true")
	return falseLiteralRe.ReplaceAllString(s, ": false")
}

// QuoteBareArrayScalars wraps a lone unquoted scalar inside brackets in double
// quotes ([foo bar] → ["foo bar"]). This rewrite corrupts nested arrays and
// arrays of objects, so the pipeline only applies it when the expected schema
// contains no nested structure.
func QuoteBareArrayScalars(s string) string {
	return bareArrayRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.TrimSpace(m[1 : len(m)-1])
		switch inner {
		case "true", "false", "null":
			return m
		}
		if _, err := strconv.ParseFloat(inner, 64); err == nil {
			return m
		}
		return `["` + inner + `"]`
	})
}

// Normalize applies the full normalization pass in order. The transforms are
// heuristic: they can in principle touch legitimately punctuated text inside
// string values, which is why the pipeline only reaches this stage after an
// as-is parse has already failed.
func Normalize(s string, aggressiveArrays bool) string {
	s = ReplaceSmartQuotes(s)
	s = StripControlChars(s)
	s = NormalizeNewlines(s)
	s = RemoveTrailingCommas(s)
	s = RemoveLeadingCommas(s)
	s = CollapseCommaRuns(s)
	s = QuoteBareKeys(s)
	s = LowercaseBooleans(s)
	if aggressiveArrays {
		s = QuoteBareArrayScalars(s)
	}
	return s
}
