package writers

import (
	"context"
	"fmt"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// SnippetsWriter pushes snippets.
type SnippetsWriter struct {
	base
}

// NewSnippetsWriter builds the snippets writer.
func NewSnippetsWriter() ports.Writer {
	return &SnippetsWriter{base: base{domain: domain.DomainSnippets}}
}

func (w *SnippetsWriter) Write(ctx context.Context) error {
	for _, s := range w.snapshot.Snippets {
		payload := map[string]any{"snippet": map[string]any{
			"slug":     s.Slug,
			"name":     s.Name,
			"template": s.Template,
		}}
		if err := w.upsert(ctx, "/snippets.json", member("snippets", s.Slug), payload); err != nil {
			return fmt.Errorf("snippet %q: %w", s.Slug, err)
		}
	}
	w.done()
	return nil
}
