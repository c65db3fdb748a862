package schema

import "fmt"

// ErrorReason classifies schema compilation failures.
type ErrorReason string

// ReasonDuplicateName indicates a descriptor name collides with a base
// attribute or another descriptor.
const ReasonDuplicateName ErrorReason = "duplicate_name"

// Error represents a schema compilation failure. Compilation errors are
// configuration errors: they abort schema construction before any document is
// processed.
type Error struct {
	Reason ErrorReason
	Name   string
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonDuplicateName:
		return fmt.Sprintf("schema error: duplicate attribute name %q", e.Name)
	default:
		return fmt.Sprintf("schema error: %s (%s)", e.Reason, e.Name)
	}
}
