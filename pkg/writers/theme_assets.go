package writers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/aretw0/sitepush/pkg/adapters/engineapi"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// ThemeAssetsWriter uploads theme assets, then makes sure every content
// asset of the snapshot exists remotely, since templates may link to them
// directly. It shares the run's content-assets writer with the entries writer.
type ThemeAssetsWriter struct {
	base
}

// NewThemeAssetsWriter builds the theme assets writer.
func NewThemeAssetsWriter() ports.Writer {
	return &ThemeAssetsWriter{base: base{domain: domain.DomainThemeAssets}}
}

func (w *ThemeAssetsWriter) Write(ctx context.Context) error {
	for _, a := range w.snapshot.ThemeAssets {
		if err := w.upload(ctx, a); err != nil {
			return fmt.Errorf("theme asset %q: %w", a.Path, err)
		}
	}

	if len(w.snapshot.ContentAssets) > 0 {
		assets, err := w.host.ContentAssetsWriter(ctx)
		if err != nil {
			return err
		}
		for _, a := range w.snapshot.ContentAssets {
			if _, err := assets.Upload(ctx, a); err != nil {
				return fmt.Errorf("content asset %q: %w", a.Path, err)
			}
		}
	}

	w.done()
	return nil
}

func (w *ThemeAssetsWriter) upload(ctx context.Context, a domain.ThemeAsset) error {
	form := func() engineapi.Form {
		return engineapi.Form{
			Fields:    map[string]string{"theme_asset[folder]": a.Folder},
			FileField: "theme_asset[source]",
			Filename:  path.Base(a.Path),
			File:      bytes.NewReader(a.Data),
		}
	}

	err := w.client.Upload(ctx, http.MethodPost, "/theme_assets.json", form(), nil)
	if err == nil {
		w.created++
		return nil
	}
	if !engineapi.IsConflict(err) {
		return err
	}
	if !w.opts.Force {
		w.kept++
		return nil
	}
	if err := w.client.Upload(ctx, http.MethodPut, member("theme_assets", a.Path), form(), nil); err != nil {
		return err
	}
	w.updated++
	return nil
}
