package writers

import (
	"context"
	"fmt"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// ContentEntriesWriter pushes entries of content types written earlier in
// the run. Referenced content assets go through the run's shared asset writer.
type ContentEntriesWriter struct {
	base
}

// NewContentEntriesWriter builds the content entries writer.
func NewContentEntriesWriter() ports.Writer {
	return &ContentEntriesWriter{base: base{domain: domain.DomainContentEntries}}
}

func (w *ContentEntriesWriter) Write(ctx context.Context) error {
	for _, entry := range w.snapshot.ContentEntries {
		if _, ok := w.snapshot.ContentType(entry.ContentType); !ok {
			return fmt.Errorf("entry %q: unknown content type %q", entry.Slug, entry.ContentType)
		}

		attrs := make(map[string]any, len(entry.Attributes)+1)
		for k, v := range entry.Attributes {
			attrs[k] = v
		}
		attrs["_slug"] = entry.Slug

		if len(entry.Assets) > 0 {
			urls, err := w.uploadAssets(ctx, entry.Assets)
			if err != nil {
				return err
			}
			for k, v := range attrs {
				if path, ok := v.(string); ok {
					if url, found := urls[path]; found {
						attrs[k] = url
					}
				}
			}
		}

		collection := "/content_types/" + entry.ContentType + "/entries.json"
		payload := map[string]any{"content_entry": attrs}
		if err := w.upsert(ctx, collection, member("content_types/"+entry.ContentType+"/entries", entry.Slug), payload); err != nil {
			return fmt.Errorf("entry %q: %w", entry.Slug, err)
		}
	}
	w.done()
	return nil
}

// uploadAssets returns the remote URL of each referenced asset path.
func (w *ContentEntriesWriter) uploadAssets(ctx context.Context, paths []string) (map[string]string, error) {
	assets, err := w.host.ContentAssetsWriter(ctx)
	if err != nil {
		return nil, err
	}
	urls := make(map[string]string, len(paths))
	for _, path := range paths {
		asset, ok := w.snapshot.ContentAsset(path)
		if !ok {
			return nil, fmt.Errorf("content asset %q is not part of the snapshot", path)
		}
		url, err := assets.Upload(ctx, asset)
		if err != nil {
			return nil, fmt.Errorf("content asset %q: %w", path, err)
		}
		urls[path] = url
	}
	return urls, nil
}
