package writers

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// TranslationsWriter pushes translation keys, optionally limited to the
// locales listed in the run options.
type TranslationsWriter struct {
	base
}

// NewTranslationsWriter builds the translations writer.
func NewTranslationsWriter() ports.Writer {
	return &TranslationsWriter{base: base{domain: domain.DomainTranslations}}
}

func (w *TranslationsWriter) Write(ctx context.Context) error {
	for _, tr := range w.snapshot.Translations {
		values := make(map[string]string, len(tr.Values))
		for locale, text := range tr.Values {
			if len(w.opts.Locales) > 0 && !slices.Contains(w.opts.Locales, locale) {
				continue
			}
			values[locale] = text
		}
		if len(values) == 0 {
			continue
		}
		payload := map[string]any{"translation": map[string]any{
			"key":    tr.Key,
			"values": values,
		}}
		if err := w.upsert(ctx, "/translations.json", member("translations", tr.Key), payload); err != nil {
			return fmt.Errorf("translation %q: %w", tr.Key, err)
		}
	}
	w.done()
	return nil
}
