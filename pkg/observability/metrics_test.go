package observability_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRunStart(ctx, &domain.RunEvent{})
	hooks.OnWriterFinish(ctx, &domain.WriterEvent{Domain: domain.DomainSite, Duration: 20 * time.Millisecond})
	hooks.OnWriterFinish(ctx, &domain.WriterEvent{Domain: domain.DomainSnippets, Err: errors.New("boom")})
	hooks.OnRunFinish(ctx, &domain.RunEvent{Duration: time.Second, Err: errors.New("boom")})

	expected := `
# HELP sitepush_writer_runs_total Total number of writer invocations per domain.
# TYPE sitepush_writer_runs_total counter
sitepush_writer_runs_total{domain="site",status="succeeded"} 1
sitepush_writer_runs_total{domain="snippets",status="failed"} 1
# HELP sitepush_runs_total Total number of finished push runs.
# TYPE sitepush_runs_total counter
sitepush_runs_total{status="failed"} 1
# HELP sitepush_runs_in_flight Number of push runs currently executing.
# TYPE sitepush_runs_in_flight gauge
sitepush_runs_in_flight 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"sitepush_writer_runs_total", "sitepush_runs_total", "sitepush_runs_in_flight"))

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "sitepush_writer_duration_seconds"))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
