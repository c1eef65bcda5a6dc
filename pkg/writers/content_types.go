package writers

import (
	"context"
	"fmt"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// ContentTypesWriter pushes content type schemas. Later domains refer to
// them by slug.
type ContentTypesWriter struct {
	base
}

// NewContentTypesWriter builds the content types writer.
func NewContentTypesWriter() ports.Writer {
	return &ContentTypesWriter{base: base{domain: domain.DomainContentTypes}}
}

func (w *ContentTypesWriter) Write(ctx context.Context) error {
	for _, ct := range w.snapshot.ContentTypes {
		if ct.Slug == "" {
			return fmt.Errorf("content type %q has no slug", ct.Name)
		}
		fields := make([]map[string]any, 0, len(ct.Fields))
		for i, f := range ct.Fields {
			field := map[string]any{
				"name":      f.Name,
				"label":     f.Label,
				"type":      f.Type,
				"required":  f.Required,
				"localized": f.Localized,
				"position":  i,
			}
			if f.ClassSlug != "" {
				if _, ok := w.snapshot.ContentType(f.ClassSlug); !ok {
					return fmt.Errorf("content type %q: field %q targets unknown content type %q", ct.Slug, f.Name, f.ClassSlug)
				}
				field["class_slug"] = f.ClassSlug
			}
			fields = append(fields, field)
		}
		payload := map[string]any{"content_type": map[string]any{
			"slug":             ct.Slug,
			"name":             ct.Name,
			"description":      ct.Description,
			"label_field_name": ct.LabelField,
			"fields":           fields,
		}}
		if err := w.upsert(ctx, "/content_types.json", member("content_types", ct.Slug), payload); err != nil {
			return fmt.Errorf("content type %q: %w", ct.Slug, err)
		}
	}
	w.done()
	return nil
}
