package writers

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aretw0/sitepush/pkg/adapters/engineapi"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// Registry returns the bundled writer of every plannable domain.
func Registry() map[domain.Domain]ports.WriterFactory {
	return map[domain.Domain]ports.WriterFactory{
		domain.DomainSite:           NewSiteWriter,
		domain.DomainSnippets:       NewSnippetsWriter,
		domain.DomainContentTypes:   NewContentTypesWriter,
		domain.DomainContentEntries: NewContentEntriesWriter,
		domain.DomainTranslations:   NewTranslationsWriter,
		domain.DomainPages:          NewPagesWriter,
		domain.DomainThemeAssets:    NewThemeAssetsWriter,
	}
}

// base carries what every writer needs once prepared.
type base struct {
	domain   domain.Domain
	host     ports.Host
	snapshot *domain.Snapshot
	opts     config.Options
	client   *engineapi.Client
	logger   *slog.Logger

	created, updated, kept int
}

func (b *base) Prepare(_ context.Context, host ports.Host) error {
	b.host = host
	b.snapshot = host.Snapshot()
	b.opts = host.Options()
	b.client = engineapi.NewClient(host.Session())
	b.logger = host.Logger().With("domain", b.domain)
	return nil
}

// upsert creates a resource and falls back to an update on conflict when
// the run is forced.
func (b *base) upsert(ctx context.Context, collection, member string, payload any) error {
	err := b.client.Post(ctx, collection, payload, nil)
	if err == nil {
		b.created++
		return nil
	}
	if !engineapi.IsConflict(err) {
		return err
	}
	if !b.opts.Force {
		b.kept++
		b.logger.Debug("resource exists, keeping remote version", "path", member)
		return nil
	}
	if err := b.client.Put(ctx, member, payload, nil); err != nil {
		return err
	}
	b.updated++
	return nil
}

func (b *base) done() {
	b.logger.Info("domain written", "created", b.created, "updated", b.updated, "kept", b.kept)
}

// member builds "/<collection>/<escaped id>.json".
func member(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id) + ".json"
}
