package runner

import (
	"log/slog"
	"maps"
	"time"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
	"github.com/aretw0/sitepush/pkg/trust"
)

// DefaultLockTTL bounds how long a crashed run can keep an endpoint locked.
const DefaultLockTTL = 30 * time.Minute

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithEstablisher replaces the trust step.
func WithEstablisher(e Establisher) Option {
	return func(r *Runner) {
		r.establisher = e
	}
}

// WithEngineAPI builds the trust step on top of api.
func WithEngineAPI(api ports.EngineAPI, opts ...trust.Option) Option {
	return func(r *Runner) {
		r.engineAPI = api
		r.trustOpts = opts
	}
}

// WithWriters replaces the whole writer registry.
func WithWriters(writers map[domain.Domain]ports.WriterFactory) Option {
	return func(r *Runner) {
		r.writers = maps.Clone(writers)
	}
}

// WithWriter overrides the writer of a single domain. Overrides apply on
// top of the registry, bundled or set by WithWriters, in any option order.
func WithWriter(d domain.Domain, factory ports.WriterFactory) Option {
	return func(r *Runner) {
		if r.overrides == nil {
			r.overrides = make(map[domain.Domain]ports.WriterFactory)
		}
		r.overrides[d] = factory
	}
}

// WithAssetWriter configures how the shared content-assets writer is built.
func WithAssetWriter(factory ports.AssetWriterFactory) Option {
	return func(r *Runner) {
		r.assetFactory = factory
	}
}

// WithLocker serializes runs targeting the same uri. A zero ttl uses DefaultLockTTL.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(r *Runner) {
		r.locker = locker
		r.lockTTL = ttl
	}
}

// WithLifecycleHooks registers observability hooks. Calling it more than
// once chains the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = r.hooks.Merge(hooks)
	}
}
