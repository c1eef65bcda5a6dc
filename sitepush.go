package sitepush

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/sitepush/internal/logging"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/aretw0/sitepush/pkg/runner"
)

// Pusher is the high-level entry point of the library. It holds the decoded
// options and the snapshot, and creates a fresh runner for each push.
type Pusher struct {
	opts       config.Options
	snapshot   *domain.Snapshot
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	runnerOpts []runner.Option
}

// Option defines a functional option for configuring the Pusher.
type Option func(*Pusher)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pusher) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pusher) {
		p.hooks = p.hooks.Merge(hooks)
	}
}

// WithRunnerOptions passes options through to every runner created.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(p *Pusher) {
		p.runnerOpts = append(p.runnerOpts, opts...)
	}
}

// New decodes params into run options (see config.Decode) and validates them.
func New(params map[string]any, snapshot *domain.Snapshot, opts ...Option) (*Pusher, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	options, err := config.Decode(params)
	if err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	p := &Pusher{opts: options, snapshot: snapshot}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p, nil
}

// Options returns a copy of the decoded run options.
func (p *Pusher) Options() config.Options {
	return p.opts.Clone()
}

// Plan returns the writers a push would run, without any I/O.
func (p *Pusher) Plan() plan.Plan {
	return plan.Build(p.opts)
}

// Push prepares a runner and runs it. The report is nil only when the push
// failed before any writer was planned to run.
func (p *Pusher) Push(ctx context.Context) (*runner.Report, error) {
	opts := append([]runner.Option{
		runner.WithLogger(p.logger),
		runner.WithLifecycleHooks(p.hooks),
	}, p.runnerOpts...)

	r, err := runner.New(p.opts, p.snapshot, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Prepare(ctx); err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Push is a shortcut for New followed by Pusher.Push.
func Push(ctx context.Context, params map[string]any, snapshot *domain.Snapshot, opts ...Option) (*runner.Report, error) {
	p, err := New(params, snapshot, opts...)
	if err != nil {
		return nil, err
	}
	return p.Push(ctx)
}
