package extract

import "fmt"

// ExtractionError indicates that text could not be pulled out of a resume
// document.
type ExtractionError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.Source, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
