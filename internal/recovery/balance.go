package recovery

// BalanceBrackets appends the closers for any unmatched '{' or '[' in LIFO
// order (most recently opened closed first), so truncated model output can
// still parse. The scan is string-aware: brackets inside string literals do
// not count, and an unterminated string literal is closed before the brackets.
// Surplus closers are left in place for the parser to report.
func BalanceBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if n := len(stack); n > 0 && stack[n-1] == '{' {
				stack = stack[:n-1]
			}
		case ']':
			if n := len(stack); n > 0 && stack[n-1] == '[' {
				stack = stack[:n-1]
			}
		}
	}

	if !inString && len(stack) == 0 {
		return s
	}

	out := []byte(s)
	if inString {
		out = append(out, '"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out = append(out, '}')
		} else {
			out = append(out, ']')
		}
	}
	return string(out)
}
