package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/aretw0/sitepush/pkg/runner"
)

// Overlay carries run results to paint on top of the plan.
type Overlay struct {
	Succeeded []domain.Domain
	Failed    domain.Domain
}

// OverlayFromReport builds an Overlay from a finished run.
func OverlayFromReport(r *runner.Report) *Overlay {
	if r == nil {
		return nil
	}
	o := &Overlay{Succeeded: r.Succeeded()}
	if d, ok := r.Failed(); ok {
		o.Failed = d
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the writer plan.
// Planned domains are chained in execution order; domains the options
// filtered out are drawn detached with a dashed border.
// - Site: ((Circle))
// - Theme assets: [[Subroutine]] (it drives the content-assets sub-writer)
// - Default: [Rectangle]
func GenerateMermaid(p plan.Plan, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, d := range domain.BaseOrder() {
		opener, closer := "[", "]"
		switch d {
		case domain.DomainSite:
			opener, closer = "((", "))"
		case domain.DomainThemeAssets:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", d, opener, label(d), closer))
	}

	planned := p.Domains()
	for i := 1; i < len(planned); i++ {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", planned[i-1], planned[i]))
	}

	sb.WriteString("\n")
	sb.WriteString("    classDef excluded stroke-dasharray: 5 5,color:#9ca3af\n")
	for _, d := range domain.BaseOrder() {
		if !p.Contains(d) {
			sb.WriteString(fmt.Sprintf("    class %s excluded\n", d))
		}
	}

	if overlay != nil {
		sb.WriteString("    classDef succeeded fill:#d1fae5,stroke:#059669\n")
		sb.WriteString("    classDef failed fill:#fee2e2,stroke:#dc2626,stroke-width:2px\n")
		for _, d := range overlay.Succeeded {
			sb.WriteString(fmt.Sprintf("    class %s succeeded\n", d))
		}
		if overlay.Failed != "" {
			sb.WriteString(fmt.Sprintf("    class %s failed\n", overlay.Failed))
		}
	}

	return sb.String()
}

func label(d domain.Domain) string {
	return strings.ReplaceAll(string(d), "_", " ")
}
