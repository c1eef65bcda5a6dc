package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/sitepush/internal/logging"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
)

// createLogger configures the application logger. Logs go to w (Stderr by
// default) so that reports on Stdout stay clean.
func createLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithWriter(w, lvl, false), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnWriterStart: func(ctx context.Context, e *domain.WriterEvent) {
			logger.Debug("writer start", "domain", e.Domain, "position", e.Position)
		},
		OnWriterFinish: func(ctx context.Context, e *domain.WriterEvent) {
			if e.Err != nil {
				logger.Debug("writer finish (error)", "domain", e.Domain, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.Debug("writer finish", "domain", e.Domain, "duration", e.Duration)
		},
	}
}

// ResolveOptions layers flag values over the deploy file environment, if
// any, and decodes the result.
func ResolveOptions(deployFile, env string, flags map[string]any) (config.Options, error) {
	var layers []map[string]any
	if deployFile != "" {
		deploy, err := config.LoadDeployFile(deployFile, env)
		if err != nil {
			return config.Options{}, err
		}
		layers = append(layers, deploy)
	}
	layers = append(layers, flags)
	return config.Decode(config.Merge(layers...))
}

// needsPassword reports whether password credentials are incomplete.
func needsPassword(opts config.Options) bool {
	return opts.APIKey == "" && opts.Email != "" && opts.Password == ""
}
