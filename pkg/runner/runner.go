package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/aretw0/sitepush/internal/logging"
	"github.com/aretw0/sitepush/pkg/adapters/engineapi"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/aretw0/sitepush/pkg/ports"
	"github.com/aretw0/sitepush/pkg/trust"
	"github.com/aretw0/sitepush/pkg/writers"
)

// Establisher produces the authenticated session of a run.
type Establisher interface {
	Establish(ctx context.Context, opts config.Options) (*domain.Session, error)
}

// Runner owns the configuration and snapshot of one push and executes it.
// It implements ports.Host for the writers it runs.
type Runner struct {
	opts     config.Options
	snapshot *domain.Snapshot

	establisher  Establisher
	engineAPI    ports.EngineAPI
	trustOpts    []trust.Option
	writers      map[domain.Domain]ports.WriterFactory
	overrides    map[domain.Domain]ports.WriterFactory
	assetFactory ports.AssetWriterFactory
	locker       ports.DistributedLocker
	lockTTL      time.Duration
	hooks        domain.LifecycleHooks
	logger       *slog.Logger

	mu      sync.Mutex
	state   State
	session *domain.Session
	current domain.Domain
	report  *Report

	// assetsMu guards the lazily built content-assets writer.
	assetsMu sync.Mutex
	assets   ports.AssetWriter
}

var _ ports.Host = (*Runner)(nil)

// New creates an idle Runner. opts is copied; later changes by the caller
// do not affect the run.
func New(opts config.Options, snapshot *domain.Snapshot, options ...Option) (*Runner, error) {
	if snapshot == nil {
		return nil, errors.New("snapshot is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	r := &Runner{
		opts:     opts.Clone(),
		snapshot: snapshot,
		state:    StateIdle,
	}
	for _, opt := range options {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	if r.establisher == nil {
		api := r.engineAPI
		if api == nil {
			api = engineapi.New(engineapi.WithLogger(r.logger))
		}
		trustOpts := append([]trust.Option{trust.WithLogger(r.logger)}, r.trustOpts...)
		r.establisher = trust.New(api, trustOpts...)
	}
	if r.writers == nil {
		r.writers = writers.Registry()
	}
	maps.Copy(r.writers, r.overrides)
	if r.assetFactory == nil {
		r.assetFactory = writers.NewContentAssetsWriter
	}
	if r.lockTTL <= 0 {
		r.lockTTL = DefaultLockTTL
	}
	return r, nil
}

// Prepare establishes trust and the session token. Nothing is written
// remotely if it fails, and the runner moves to StateFailed.
func (r *Runner) Prepare(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		if r.state == StatePrepared {
			return ErrAlreadyPrepared
		}
		return fmt.Errorf("cannot prepare a runner in state %s", r.state)
	}

	session, err := r.establisher.Establish(ctx, r.opts)
	if err != nil {
		r.state = StateFailed
		r.logger.Error("prepare failed", "uri", r.opts.URI, "err", err)
		return err
	}

	r.session = session
	r.state = StatePrepared
	r.logger = r.logger.With("run_id", session.ID, "uri", session.URI)
	return nil
}

// Plan returns the writer plan for this run's options.
func (r *Runner) Plan() plan.Plan {
	return plan.Build(r.opts)
}

// Run executes the planned writers in order. It stops at the first failure
// and returns it as a *domain.WriterError; remaining writers are skipped.
// The report is returned in every case once the run started.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.mu.Lock()
	switch {
	case r.state == StatePrepared:
	case r.state == StateIdle, r.session == nil:
		r.mu.Unlock()
		return nil, ErrNotPrepared
	default:
		r.mu.Unlock()
		return nil, ErrAlreadyRun
	}
	r.state = StateRunning
	session := r.session
	logger := r.logger
	planned := r.Plan().Domains()
	report := newReport(session.ID, session.URI, planned)
	r.report = report
	r.mu.Unlock()

	defer session.Invalidate()

	if r.hooks.OnRunStart != nil {
		r.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: r.eventBase(domain.EventRunStart),
			URI:       session.URI,
			Plan:      planned,
		})
	}

	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx, session.URI, r.lockTTL)
		if err != nil {
			err = fmt.Errorf("failed to acquire run lock: %w", err)
			r.finish(ctx, StateFailed, 0, err)
			return r.Report(), err
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to release run lock (will expire via TTL)", "err", err)
			}
		}()
	}

	logger.Info("run started", "plan", r.Plan().String())

	for i, d := range planned {
		err := r.runWriter(ctx, i, d)
		if err != nil {
			logger.Error("writer failed, aborting run",
				"domain", d,
				"succeeded", len(report.Succeeded()),
				"skipped", len(planned)-i-1,
				"err", err,
			)
			r.finish(ctx, StateFailed, i+1, err)
			return r.Report(), err
		}
	}

	r.finish(ctx, StateCompleted, len(planned), nil)
	logger.Info("run completed", "domains", len(planned))
	return r.Report(), nil
}

// runWriter builds, prepares and invokes the writer of d, recording the step.
func (r *Runner) runWriter(ctx context.Context, i int, d domain.Domain) error {
	r.mu.Lock()
	r.current = d
	r.report.Steps[i].Started = time.Now()
	r.mu.Unlock()

	if r.hooks.OnWriterStart != nil {
		r.hooks.OnWriterStart(ctx, &domain.WriterEvent{
			EventBase: r.eventBase(domain.EventWriterStart),
			Domain:    d,
			Position:  i,
		})
	}

	err := r.invoke(ctx, d)

	r.mu.Lock()
	step := &r.report.Steps[i]
	step.Duration = time.Since(step.Started)
	if err != nil {
		step.Status = StepFailed
		step.Err = err
	} else {
		step.Status = StepSucceeded
	}
	duration := step.Duration
	r.current = ""
	r.mu.Unlock()

	if r.hooks.OnWriterFinish != nil {
		r.hooks.OnWriterFinish(ctx, &domain.WriterEvent{
			EventBase: r.eventBase(domain.EventWriterFinish),
			Domain:    d,
			Position:  i,
			Duration:  duration,
			Err:       err,
		})
	}
	return err
}

func (r *Runner) invoke(ctx context.Context, d domain.Domain) error {
	if err := ctx.Err(); err != nil {
		return &domain.WriterError{Domain: d, Err: err}
	}
	factory, ok := r.writers[d]
	if !ok || factory == nil {
		return &domain.WriterError{Domain: d, Err: ErrNoWriter}
	}

	w := factory()
	r.logger.Debug("writer started", "domain", d, "items", r.snapshot.Count(d))
	if err := w.Prepare(ctx, r); err != nil {
		return asWriterError(d, err)
	}
	if err := w.Write(ctx); err != nil {
		return asWriterError(d, err)
	}
	return nil
}

// asWriterError keeps a WriterError already naming d, and wraps anything else.
func asWriterError(d domain.Domain, err error) error {
	var we *domain.WriterError
	if errors.As(err, &we) && we.Domain == d {
		return err
	}
	return &domain.WriterError{Domain: d, Err: err}
}

// finish marks steps from index from onwards as skipped and closes the report.
func (r *Runner) finish(ctx context.Context, state State, from int, err error) {
	r.mu.Lock()
	for i := from; i < len(r.report.Steps); i++ {
		if r.report.Steps[i].Status == StepPending {
			r.report.Steps[i].Status = StepSkipped
		}
	}
	r.state = state
	r.report.State = state
	r.report.Err = err
	r.report.Finished = time.Now()
	event := &domain.RunEvent{
		EventBase: r.eventBase(domain.EventRunFinish),
		URI:       r.report.URI,
		Plan:      r.Plan().Domains(),
		Duration:  r.report.Finished.Sub(r.report.Started),
		Err:       err,
	}
	r.mu.Unlock()

	if r.hooks.OnRunFinish != nil {
		r.hooks.OnRunFinish(ctx, event)
	}
}

func (r *Runner) eventBase(t domain.EventType) domain.EventBase {
	runID := ""
	if r.session != nil {
		runID = r.session.ID
	}
	return domain.EventBase{Timestamp: time.Now(), Type: t, RunID: runID}
}

// ContentAssetsWriter returns the run's shared content-assets writer. It is
// built and prepared on first use only; a failure is reported as a
// *domain.WriterError for the domain being written at the time.
// The asset writer's Prepare must not call ContentAssetsWriter.
func (r *Runner) ContentAssetsWriter(ctx context.Context) (ports.AssetWriter, error) {
	r.assetsMu.Lock()
	defer r.assetsMu.Unlock()

	if r.assets != nil {
		return r.assets, nil
	}

	r.mu.Lock()
	session := r.session
	current := r.current
	r.mu.Unlock()
	if current == "" {
		current = domain.DomainContentAssets
	}
	if session == nil {
		return nil, &domain.WriterError{Domain: current, Err: ErrNotPrepared}
	}

	w := r.assetFactory()
	if err := w.Prepare(ctx, r); err != nil {
		return nil, &domain.WriterError{Domain: current, Err: fmt.Errorf("prepare content assets writer: %w", err)}
	}
	r.assets = w
	r.logger.Debug("content assets writer ready", "requested_by", current)
	return w, nil
}

// Session returns the session established by Prepare, or nil.
func (r *Runner) Session() *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Snapshot returns the read-only site snapshot.
func (r *Runner) Snapshot() *domain.Snapshot {
	return r.snapshot
}

// Options returns a copy of the run options.
func (r *Runner) Options() config.Options {
	return r.opts.Clone()
}

// Logger returns the run logger.
func (r *Runner) Logger() *slog.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logger
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Report returns a copy of the run report, or nil before Run.
func (r *Runner) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.report.clone()
}
