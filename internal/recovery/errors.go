package recovery

import "fmt"

// Stage identifies which pipeline stage an error was reported from.
type Stage string

// Pipeline stages, in escalation order.
const (
	StageExtract   Stage = "extract"
	StageParse     Stage = "parse"
	StageNormalize Stage = "normalize"
	StageBalance   Stage = "balance"
	StageWindow    Stage = "window"
)

// Reason classifies recovery failures.
type Reason string

// Failure reasons.
const (
	// ReasonNoStructureFound means the raw text contains no opening brace at all.
	ReasonNoStructureFound Reason = "no_structure_found"
	// ReasonUnrecoverable means every stage was exhausted without a successful parse.
	ReasonUnrecoverable Reason = "unrecoverable"
)

// Error represents a recovery pipeline failure. It carries the cleaned
// intermediate text and the last underlying parse diagnostic so callers can
// render the failure alongside the raw model output for debugging.
type Error struct {
	Stage   Stage
	Reason  Reason
	Pos     int64  // byte offset of the last reported parse error, -1 when unknown
	Cleaned string // most-transformed intermediate text, empty for ReasonNoStructureFound
	Cause   error  // last underlying parse diagnostic
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonNoStructureFound:
		return "recovery error: no JSON object found in model output"
	default:
		if e.Cause != nil {
			return fmt.Sprintf("recovery error: output unrecoverable after %s stage: %v", e.Stage, e.Cause)
		}
		return fmt.Sprintf("recovery error: output unrecoverable after %s stage", e.Stage)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}
