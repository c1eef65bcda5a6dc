package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/muesli/termenv"
)

var (
	colorActive = "#818cf8"
	colorOK     = "#34d399"
	colorFailed = "#fb7185"
	colorMuted  = "#9ca3af"
)

// Progress prints one line per writer as a push advances.
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	profile termenv.Profile
}

// NewProgress writes to out using profile for colors. Use termenv.Ascii to
// disable styling.
func NewProgress(out io.Writer, profile termenv.Profile) *Progress {
	return &Progress{out: out, profile: profile}
}

func (p *Progress) style(s, color string) string {
	return p.profile.String(s).Foreground(p.profile.Color(color)).String()
}

func (p *Progress) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// Hooks returns lifecycle hooks that drive the progress output.
func (p *Progress) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			p.printf("%s %s (%d writers)\n", p.style("pushing to", colorMuted), e.URI, len(e.Plan))
		},
		OnWriterStart: func(_ context.Context, e *domain.WriterEvent) {
			p.printf("%s %s\n", p.style("->", colorActive), e.Domain)
		},
		OnWriterFinish: func(_ context.Context, e *domain.WriterEvent) {
			d := e.Duration.Round(time.Millisecond)
			if e.Err != nil {
				p.printf("%s %s %s: %v\n", p.style("x", colorFailed), e.Domain, p.style(d.String(), colorMuted), e.Err)
				return
			}
			p.printf("%s %s %s\n", p.style("ok", colorOK), e.Domain, p.style(d.String(), colorMuted))
		},
	}
}
