package tui_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/sitepush/internal/presentation/tui"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/aretw0/sitepush/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_AsciiOutput(t *testing.T) {
	var buf bytes.Buffer
	hooks := tui.NewProgress(&buf, termenv.Ascii).Hooks()
	ctx := context.Background()

	hooks.OnRunStart(ctx, &domain.RunEvent{URI: "https://x.test/api", Plan: []domain.Domain{domain.DomainSite, domain.DomainSnippets}})
	hooks.OnWriterStart(ctx, &domain.WriterEvent{Domain: domain.DomainSite})
	hooks.OnWriterFinish(ctx, &domain.WriterEvent{Domain: domain.DomainSite, Duration: 12 * time.Millisecond})
	hooks.OnWriterFinish(ctx, &domain.WriterEvent{Domain: domain.DomainSnippets, Err: errors.New("boom")})

	assert.Equal(t, "pushing to https://x.test/api (2 writers)\n"+
		"-> site\n"+
		"ok site 12ms\n"+
		"x snippets 0s: boom\n", buf.String())
}

func TestReportMarkdown(t *testing.T) {
	r := &runner.Report{
		RunID:    "run-1",
		URI:      "https://x.test/api",
		State:    runner.StateFailed,
		Started:  time.Unix(0, 0),
		Finished: time.Unix(2, 0),
		Err:      errors.New("snippets writer: boom"),
		Steps: []runner.Step{
			{Domain: domain.DomainSite, Status: runner.StepSucceeded, Duration: 5 * time.Millisecond},
			{Domain: domain.DomainSnippets, Status: runner.StepFailed},
			{Domain: domain.DomainPages, Status: runner.StepSkipped},
		},
	}

	md := tui.ReportMarkdown(r)
	assert.Contains(t, md, "# Push failed")
	assert.Contains(t, md, "- **Duration:** 2s")
	assert.Contains(t, md, "| 1 | site | succeeded | 5ms |")
	assert.Contains(t, md, "| 3 | pages | skipped | - |")
	assert.Contains(t, md, "`snippets writer: boom`")
}

func TestPlanMarkdown(t *testing.T) {
	md := tui.PlanMarkdown(plan.Build(config.Default()))
	assert.Contains(t, md, "1. site\n")
	assert.Contains(t, md, "6. theme_assets\n")
}

func TestRenderer_Plain(t *testing.T) {
	render, err := tui.NewRenderer(false, 80)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tui.Print(&buf, render, "# Plan\n\n1. site\n"))
	assert.Contains(t, buf.String(), "site")
}
