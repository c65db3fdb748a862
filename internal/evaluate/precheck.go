package evaluate

import (
	"context"

	"github.com/jonathan/resume-recommender/internal/llm"
	"github.com/jonathan/resume-recommender/internal/prompts"
)

// FieldCheck is the model's read-back of one descriptor's guidance.
type FieldCheck struct {
	Field   string `json:"field"`
	Summary string `json:"summary"`
}

// PrecheckResult holds the pre-evaluation sanity checks: a requirements
// summary for the job and one read-back per custom field, so a reviewer can
// confirm the configuration before burning model calls on a whole batch.
type PrecheckResult struct {
	JobSummary  string       `json:"job_summary"`
	FieldChecks []FieldCheck `json:"field_checks,omitempty"`
}

// Precheck runs the pre-evaluation checks using the lite tier.
func (e *Evaluator) Precheck(ctx context.Context) (*PrecheckResult, error) {
	jobTemplate := prompts.MustGet("evaluation.json", "precheck-job")
	jobPrompt := prompts.Format(jobTemplate, map[string]string{
		"JobTitle":       e.job.Title,
		"Department":     e.job.Department,
		"JobDescription": e.job.Description,
	})

	summary, err := e.client.GenerateContent(ctx, jobPrompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "job precheck failed", Cause: err}
	}
	result := &PrecheckResult{JobSummary: summary}

	fieldTemplate := prompts.MustGet("evaluation.json", "precheck-field")
	for _, f := range e.fields {
		fieldPrompt := prompts.Format(fieldTemplate, map[string]string{
			"FieldName":   f.Name,
			"Instruction": f.GuidanceOrDefault(),
		})
		check, err := e.client.GenerateContent(ctx, fieldPrompt, llm.TierLite)
		if err != nil {
			return nil, &APICallError{Message: "field precheck failed for " + f.Name, Cause: err}
		}
		result.FieldChecks = append(result.FieldChecks, FieldCheck{Field: f.Name, Summary: check})
	}

	return result, nil
}
