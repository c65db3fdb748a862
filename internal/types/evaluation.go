package types

import "github.com/google/uuid"

// Evaluation is the per-document outcome envelope. Exactly one of Record or
// Err is set. Raw and cleaned response text are carried for diagnostic display
// when the model output could not be recovered or validated.
type Evaluation struct {
	ID          uuid.UUID `json:"id"`
	Source      string    `json:"source"`
	RawResponse string    `json:"raw_response,omitempty"`
	CleanedText string    `json:"cleaned_text,omitempty"`
	Record      *Record   `json:"-"`
	Err         error     `json:"-"`
}

// OK reports whether the evaluation produced a validated record.
func (e *Evaluation) OK() bool {
	return e.Err == nil && e.Record != nil
}
