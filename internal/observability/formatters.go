// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-recommender/internal/schema"
	"github.com/jonathan/resume-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewLen is how much raw model text to show for failed evaluations
	previewLen = 200
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSchema outputs the compiled record schema, one attribute per line.
func (p *Printer) PrintSchema(s *schema.RecordSchema) {
	if s == nil {
		return
	}

	var sb strings.Builder
	for _, attr := range s.Attributes() {
		line := fmt.Sprintf("%s: %s", attr.Name, attr.Type)
		if !attr.Required {
			line += " (optional)"
		}
		if attr.Range != nil {
			line += fmt.Sprintf(" [%g-%g]", attr.Range.Min, attr.Range.Max)
		}
		if len(attr.EnumValues) > 0 {
			line += " {" + strings.Join(attr.EnumValues, ", ") + "}"
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	p.printBox(fmt.Sprintf("Record schema (%d attributes)", s.Len()), strings.TrimRight(sb.String(), "\n"))
}

// PrintEvaluation outputs a human-readable summary of one evaluation result.
func (p *Printer) PrintEvaluation(ev *types.Evaluation) {
	if ev == nil {
		return
	}

	if ev.Err != nil {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Error: %v\n", ev.Err))
		if ev.RawResponse != "" {
			sb.WriteString("\nRaw model output:\n")
			sb.WriteString(truncate(ev.RawResponse, previewLen))
			sb.WriteString("\n")
		}
		if ev.CleanedText != "" {
			sb.WriteString("\nLast cleaned text:\n")
			sb.WriteString(truncate(ev.CleanedText, previewLen))
		}
		p.printBox("FAILED: "+ev.Source, strings.TrimRight(sb.String(), "\n"))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:      %s\n", ev.Record.CandidateName()))
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", ev.Record.Recommendation()))
	sb.WriteString(fmt.Sprintf("Overall score:  %.1f\n", ev.Record.OverallScore()))

	if strengths := ev.Record.Strings(types.FieldKeyStrengths); len(strengths) > 0 {
		sb.WriteString("\nKey strengths:\n")
		for _, s := range strengths {
			sb.WriteString("  - " + s + "\n")
		}
	}
	if concerns := ev.Record.Strings(types.FieldPotentialConcerns); len(concerns) > 0 {
		sb.WriteString("\nPotential concerns:\n")
		for _, c := range concerns {
			sb.WriteString("  - " + c + "\n")
		}
	}
	if considerations := ev.Record.Considerations(); len(considerations) > 0 {
		sb.WriteString("\nCustom considerations:\n")
		for _, c := range considerations {
			applied := "not applied"
			if c.Applied {
				applied = "applied"
			}
			sb.WriteString(fmt.Sprintf("  - %s (%s): %s\n", c.Field, applied, c.Impact))
		}
	}

	p.printBox(ev.Source, strings.TrimRight(sb.String(), "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
