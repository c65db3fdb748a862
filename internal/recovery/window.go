package recovery

// WindowRadius bounds the localized repair window around a reported parse
// error position, in bytes on each side.
const WindowRadius = 50

// RepairWindow re-applies the control-character, trailing-comma and bare-key
// repairs restricted to a window of ±WindowRadius bytes around pos, then
// splices the result back into the full text. Restricting the aggressive
// transforms to the neighborhood of the parser-reported failure limits the
// damage they can do to healthy string values elsewhere in the document.
func RepairWindow(s string, pos int64) string {
	if len(s) == 0 {
		return s
	}
	p := int(pos)
	if p < 0 {
		p = 0
	}
	if p > len(s) {
		p = len(s)
	}

	lo := p - WindowRadius
	if lo < 0 {
		lo = 0
	}
	hi := p + WindowRadius
	if hi > len(s) {
		hi = len(s)
	}

	window := s[lo:hi]
	window = StripControlChars(window)
	window = RemoveTrailingCommas(window)
	window = QuoteBareKeys(window)

	return s[:lo] + window + s[hi:]
}
