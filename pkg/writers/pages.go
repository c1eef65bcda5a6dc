package writers

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// PagesWriter pushes pages, parents before children. Templatized pages must
// target a content type present in the snapshot.
type PagesWriter struct {
	base
}

// NewPagesWriter builds the pages writer.
func NewPagesWriter() ports.Writer {
	return &PagesWriter{base: base{domain: domain.DomainPages}}
}

func depth(fullpath string) int {
	fullpath = strings.Trim(fullpath, "/")
	if fullpath == "" || fullpath == "index" {
		return 0
	}
	return strings.Count(fullpath, "/") + 1
}

func (w *PagesWriter) Write(ctx context.Context) error {
	pages := slices.Clone(w.snapshot.Pages)
	slices.SortStableFunc(pages, func(a, b domain.Page) int {
		if c := cmp.Compare(depth(a.FullPath), depth(b.FullPath)); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})

	for _, p := range pages {
		if p.ContentType != "" {
			if _, ok := w.snapshot.ContentType(p.ContentType); !ok {
				return fmt.Errorf("page %q: unknown content type %q", p.FullPath, p.ContentType)
			}
		}
		page := map[string]any{
			"fullpath":  p.FullPath,
			"title":     p.Title,
			"template":  p.Template,
			"published": p.Published,
			"position":  p.Position,
			"listed":    p.ListedInMenu,
		}
		if p.ContentType != "" {
			page["target_klass_name"] = p.ContentType
		}
		if p.Handle != "" {
			page["handle"] = p.Handle
		}
		if err := w.upsert(ctx, "/pages.json", member("pages", p.FullPath), map[string]any{"page": page}); err != nil {
			return fmt.Errorf("page %q: %w", p.FullPath, err)
		}
	}
	w.done()
	return nil
}
