package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/aretw0/sitepush/pkg/runner"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// ReportMarkdown renders a run report as a markdown document.
func ReportMarkdown(r *runner.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Push %s\n\n", r.State)
	fmt.Fprintf(&b, "- **Endpoint:** %s\n", r.URI)
	fmt.Fprintf(&b, "- **Run:** %s\n", r.RunID)
	fmt.Fprintf(&b, "- **Duration:** %s\n\n", r.Duration().Round(time.Millisecond))

	b.WriteString("| # | Domain | Status | Duration |\n")
	b.WriteString("|---|---|---|---|\n")
	for i, s := range r.Steps {
		duration := "-"
		if s.Status == runner.StepSucceeded || s.Status == runner.StepFailed {
			duration = s.Duration.Round(time.Millisecond).String()
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, s.Domain, s.Status, duration)
	}

	if r.Err != nil {
		fmt.Fprintf(&b, "\n**Error:** `%s`\n", r.Err)
	}
	return b.String()
}

// PlanMarkdown renders a writer plan as a numbered list.
func PlanMarkdown(p plan.Plan) string {
	var b strings.Builder
	b.WriteString("# Plan\n\n")
	if p.Len() == 0 {
		b.WriteString("_nothing to push_\n")
	}
	for i, d := range p.Domains() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d)
	}
	return b.String()
}

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer. When styled is false the output
// uses the plain notty style, suitable for pipes and log files.
func NewRenderer(styled bool, width int) (Renderer, error) {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render, nil
}

// Print renders markdown with render and writes it to w.
func Print(w io.Writer, render Renderer, markdown string) error {
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
