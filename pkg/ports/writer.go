package ports

import (
	"context"
	"log/slog"

	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
)

// Host is the view a writer gets of the runner executing it.
type Host interface {
	Session() *domain.Session
	Snapshot() *domain.Snapshot
	Options() config.Options
	Logger() *slog.Logger

	// ContentAssetsWriter returns the run's shared content-assets writer,
	// building and preparing it on first use.
	ContentAssetsWriter(ctx context.Context) (AssetWriter, error)
}

// Writer pushes one content domain. Prepare is called once before Write,
// and Write is called at most once per run.
type Writer interface {
	Prepare(ctx context.Context, host Host) error
	Write(ctx context.Context) error
}

// WriterFactory builds a fresh writer for one run.
type WriterFactory func() Writer

// AssetWriter uploads binary content assets referenced by other domains.
type AssetWriter interface {
	Prepare(ctx context.Context, host Host) error

	// Upload pushes asset unless an identical one already exists remotely,
	// and returns its remote URL.
	Upload(ctx context.Context, asset domain.ContentAsset) (string, error)
}

// AssetWriterFactory builds the content-assets writer of a run.
type AssetWriterFactory func() AssetWriter
