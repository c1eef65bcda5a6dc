package writers

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/sitepush/pkg/adapters/engineapi"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

type remoteAsset struct {
	Filename string `json:"filename"`
	Checksum string `json:"checksum"`
	URL      string `json:"url"`
}

// assetKey identifies stored content. Files sharing a base name in
// different snapshot folders only collide when their bytes match too.
type assetKey struct {
	filename string
	checksum string
}

// ContentAssetsWriter uploads content assets at most once per run. Prepare
// indexes what the engine already holds, so unchanged files are never sent.
type ContentAssetsWriter struct {
	client *engineapi.Client
	logger *slog.Logger

	mu       sync.Mutex
	remote   map[assetKey]remoteAsset
	byPath   map[string]string // snapshot path -> url
	uploaded int
}

// NewContentAssetsWriter builds the content-assets writer.
func NewContentAssetsWriter() ports.AssetWriter {
	return &ContentAssetsWriter{}
}

func (w *ContentAssetsWriter) Prepare(ctx context.Context, host ports.Host) error {
	w.client = engineapi.NewClient(host.Session())
	w.logger = host.Logger().With("domain", domain.DomainContentAssets)

	var existing []remoteAsset
	if err := w.client.Get(ctx, "/content_assets.json", &existing); err != nil {
		return err
	}
	w.remote = make(map[assetKey]remoteAsset, len(existing))
	w.byPath = make(map[string]string)
	for _, a := range existing {
		w.remote[assetKey{a.Filename, a.Checksum}] = a
	}
	w.logger.Debug("remote content assets indexed", "count", len(existing))
	return nil
}

// Checksum is the hex MD5 the engine reports for stored assets.
func Checksum(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func (w *ContentAssetsWriter) Upload(ctx context.Context, asset domain.ContentAsset) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if url, ok := w.byPath[asset.Path]; ok {
		return url, nil
	}
	key := assetKey{asset.Filename, Checksum(asset.Data)}
	if known, ok := w.remote[key]; ok {
		w.byPath[asset.Path] = known.URL
		return known.URL, nil
	}

	var created remoteAsset
	err := w.client.Upload(ctx, http.MethodPost, "/content_assets.json", engineapi.Form{
		FileField: "content_asset[source]",
		Filename:  asset.Filename,
		File:      bytes.NewReader(asset.Data),
	}, &created)
	if err != nil {
		return "", err
	}
	w.remote[key] = created
	w.byPath[asset.Path] = created.URL
	w.uploaded++
	w.logger.Debug("content asset uploaded", "filename", asset.Filename, "url", created.URL)
	return created.URL, nil
}

// Uploaded returns how many files were actually sent.
func (w *ContentAssetsWriter) Uploaded() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploaded
}
