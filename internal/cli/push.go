package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/sitepush/internal/presentation/graph"
	"github.com/aretw0/sitepush/internal/presentation/tui"
	redisadapter "github.com/aretw0/sitepush/pkg/adapters/redis"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/observability"
	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/aretw0/sitepush/pkg/runner"
	"github.com/aretw0/sitepush/pkg/snapshot"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrSnapshotRequired is returned when push is called without a snapshot file.
var ErrSnapshotRequired = errors.New("a snapshot file is required")

// PushConfig holds everything the push command needs.
type PushConfig struct {
	DeployFile      string
	Env             string
	SnapshotFile    string
	Params          map[string]any
	LockRedis       string
	MetricsTextfile string
	GraphFile       string
	LogLevel        string
	Styled          bool

	// PromptPassword is called when an email is configured without a
	// password or API key. Nil disables prompting.
	PromptPassword func() (string, error)

	Out       io.Writer
	LogOutput io.Writer
}

// RunPush loads the snapshot, runs a push and prints its report. The report
// is returned whenever the run started, even if it failed.
func RunPush(ctx context.Context, cfg PushConfig) (*runner.Report, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger, err := createLogger(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		return nil, err
	}

	opts, err := ResolveOptions(cfg.DeployFile, cfg.Env, cfg.Params)
	if err != nil {
		return nil, err
	}
	if needsPassword(opts) && cfg.PromptPassword != nil {
		pw, err := cfg.PromptPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		opts.Password = pw
	}

	if cfg.SnapshotFile == "" {
		return nil, ErrSnapshotRequired
	}
	snap, err := snapshot.LoadFile(cfg.SnapshotFile)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	profile := termenv.Ascii
	if cfg.Styled {
		profile = termenv.ColorProfile()
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithLifecycleHooks(metrics.Hooks()),
		runner.WithLifecycleHooks(tui.NewProgress(out, profile).Hooks()),
		runner.WithLifecycleHooks(createDebugHooks(logger)),
	}
	if cfg.LockRedis != "" {
		locker := redisadapter.Dial(cfg.LockRedis, os.Getenv("SITEPUSH_REDIS_PASSWORD"), 0)
		defer locker.Close()
		runnerOpts = append(runnerOpts, runner.WithLocker(locker, 0))
	}

	r, err := runner.New(opts, snap, runnerOpts...)
	if err != nil {
		return nil, err
	}
	defer writeMetrics(cfg.MetricsTextfile, reg, logger)

	if err := r.Prepare(ctx); err != nil {
		return nil, err
	}
	report, runErr := r.Run(ctx)
	if report == nil {
		return nil, runErr
	}

	render, err := tui.NewRenderer(cfg.Styled, 100)
	if err != nil {
		return report, errors.Join(runErr, err)
	}
	if err := tui.Print(out, render, tui.ReportMarkdown(report)); err != nil {
		return report, errors.Join(runErr, err)
	}
	if cfg.GraphFile != "" {
		chart := graph.GenerateMermaid(r.Plan(), graph.OverlayFromReport(report))
		if err := os.WriteFile(cfg.GraphFile, []byte(chart), 0o644); err != nil {
			logger.Warn("failed to write run graph", "path", cfg.GraphFile, "err", err)
		}
	}
	return report, runErr
}

func writeMetrics(path string, reg *prometheus.Registry, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		logger.Warn("failed to write metrics", "path", path, "err", err)
	}
}

// Plan output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// PlanConfig holds everything the plan command needs.
type PlanConfig struct {
	DeployFile string
	Env        string
	Params     map[string]any
	Format     string
	Styled     bool
	Out        io.Writer
}

// RunPlan prints the writer plan the options produce. Nothing is contacted.
func RunPlan(cfg PlanConfig) error {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	opts, err := ResolveOptions(cfg.DeployFile, cfg.Env, cfg.Params)
	if err != nil {
		return err
	}
	for _, name := range opts.Only {
		if _, err := domain.ParseDomain(name); err != nil {
			return err
		}
	}
	p := plan.Build(opts)

	switch cfg.Format {
	case "", FormatText:
		_, err = fmt.Fprintln(out, p)
	case FormatMermaid:
		_, err = io.WriteString(out, graph.GenerateMermaid(p, nil))
	case FormatMarkdown:
		var render tui.Renderer
		render, err = tui.NewRenderer(cfg.Styled, 100)
		if err == nil {
			err = tui.Print(out, render, tui.PlanMarkdown(p))
		}
	default:
		err = fmt.Errorf("unknown format %q", cfg.Format)
	}
	return err
}
