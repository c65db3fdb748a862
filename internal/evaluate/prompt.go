// Package evaluate orchestrates one resume evaluation: prompt construction,
// the model call, output recovery and schema validation.
package evaluate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-recommender/internal/prompts"
	"github.com/jonathan/resume-recommender/internal/types"
)

// Job describes the role candidates are evaluated against.
type Job struct {
	Title       string
	Department  string
	Description string
}

// SchemaText renders the required-JSON skeleton shown to the model: the base
// attribute lines, one value/score/explanation block per custom field, and the
// custom_considerations contract.
func SchemaText(job Job, fields []types.FieldDescriptor) string {
	lines := []string{
		`"key_strengths": ["strength1", "strength2", "strength3"],`,
		`"key_strengths_score": <number 1-5>,`,
		`"key_strengths_explanation": "<why this score was given for key strengths>",`,
		`"experience_score": <number 1-5>,`,
		`"experience_explanation": "<why this score was given for experience and relevance to role>",`,
		`"skills_match_score": <number 1-5>,`,
		`"skills_match_explanation": "<short, concrete rationale>",`,
		`"potential_concerns": ["concern1", "concern2"],`,
		`"recommendation": "<exactly one of: Hire, Consider, Pass>",`,
		`"candidate_name": "<extract from resume or use \"Candidate\">",`,
		fmt.Sprintf(`"job_title": %q,`, job.Title),
		fmt.Sprintf(`"department": %q,`, job.Department),
	}

	for _, f := range fields {
		lines = append(lines, valueLine(f))
		lines = append(lines, fmt.Sprintf(`%q: <number 1-5>,`, f.ScoreField()))
		lines = append(lines, fmt.Sprintf(`%q: "<short rationale tied to resume evidence>",`, f.ExplanationField()))
	}

	lines = append(lines,
		`"overall_score": <number 1-5>,`,
		`"overall_explanation": "<1-2 sentences summarizing the key drivers from the subscores>",`,
		`"custom_considerations": [`,
		`  { "field": "<field name>", "instruction": "<the HR rule text>", "applied": <true|false>, "impact": "<what changed and effect on overall>" }`,
		`]`,
	)

	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

// valueLine renders the typed placeholder for one custom field.
func valueLine(f types.FieldDescriptor) string {
	switch f.Kind {
	case types.KindInteger:
		return fmt.Sprintf(`%q: <integer>,`, f.Name)
	case types.KindFloat:
		return fmt.Sprintf(`%q: <number>,`, f.Name)
	case types.KindBoolean:
		return fmt.Sprintf(`%q: <true|false>,`, f.Name)
	case types.KindEnum:
		if len(f.EnumValues) > 0 {
			quoted := make([]string, len(f.EnumValues))
			for i, v := range f.EnumValues {
				quoted[i] = fmt.Sprintf("%q", v)
			}
			return fmt.Sprintf(`%q: <one of: %s>,`, f.Name, strings.Join(quoted, ", "))
		}
		return fmt.Sprintf(`%q: "<string>",`, f.Name)
	default:
		return fmt.Sprintf(`%q: "<string>",`, f.Name)
	}
}

// rulesPayload serializes the descriptor guidance as the authoritative
// category-instruction list embedded in the prompt.
func rulesPayload(fields []types.FieldDescriptor) string {
	type rule struct {
		Field       string `json:"field"`
		Instruction string `json:"instruction"`
	}
	rules := make([]rule, 0, len(fields))
	for _, f := range fields {
		rules = append(rules, rule{Field: f.Name, Instruction: f.GuidanceOrDefault()})
	}

	// The payload is read by the model, not a browser: keep < and > readable.
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(rules)
	return strings.TrimRight(sb.String(), "\n")
}

// BuildPrompt assembles the full evaluation prompt for one resume.
func BuildPrompt(job Job, fields []types.FieldDescriptor, resumeText string) string {
	template := prompts.MustGet("evaluation.json", "evaluate-resume")
	return prompts.Format(template, map[string]string{
		"Schema":         SchemaText(job, fields),
		"JobTitle":       job.Title,
		"Department":     job.Department,
		"JobDescription": job.Description,
		"ResumeText":     resumeText,
		"Rules":          rulesPayload(fields),
	})
}
