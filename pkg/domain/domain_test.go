package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Domain
	}{
		{"site", domain.DomainSite},
		{"Pages", domain.DomainPages},
		{"content-entries", domain.DomainContentEntries},
		{" theme_assets ", domain.DomainThemeAssets},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseDomain(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseDomain("content_assets")
	assert.ErrorIs(t, err, domain.ErrUnknownDomain, "the sub-writer is never plannable")

	_, err = domain.ParseDomain("layouts")
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)
	assert.ErrorContains(t, err, `"layouts"`)
}

func TestBaseOrder(t *testing.T) {
	order := domain.BaseOrder()
	assert.Equal(t, []domain.Domain{
		domain.DomainSite,
		domain.DomainSnippets,
		domain.DomainContentTypes,
		domain.DomainContentEntries,
		domain.DomainTranslations,
		domain.DomainPages,
		domain.DomainThemeAssets,
	}, order)

	order[0] = domain.DomainPages
	assert.Equal(t, domain.DomainSite, domain.BaseOrder()[0], "callers get a copy")

	for i, d := range domain.BaseOrder() {
		assert.Equal(t, i, d.Position())
		assert.True(t, d.Valid())
	}
	assert.Equal(t, -1, domain.DomainContentAssets.Position())
	assert.False(t, domain.DomainContentAssets.Valid())
}

func TestErrors(t *testing.T) {
	cause := errors.New("boom")

	trustErr := &domain.TrustSetupError{Err: cause}
	assert.ErrorIs(t, trustErr, cause)
	assert.EqualError(t, trustErr, "unable to set client certificate: boom")

	authErr := &domain.AuthenticationError{Err: domain.ErrMissingCredentials}
	assert.ErrorIs(t, authErr, domain.ErrMissingCredentials)

	wrapped := fmt.Errorf("push: %w", &domain.WriterError{Domain: domain.DomainPages, Err: cause})
	assert.ErrorIs(t, wrapped, cause)
	assert.EqualError(t, wrapped, "push: pages writer: boom")

	d, ok := domain.FailedDomain(wrapped)
	assert.True(t, ok)
	assert.Equal(t, domain.DomainPages, d)

	_, ok = domain.FailedDomain(cause)
	assert.False(t, ok)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnWriterStart: func(_ context.Context, e *domain.WriterEvent) { calls = append(calls, "first:"+e.Domain.String()) },
	}
	second := domain.LifecycleHooks{
		OnWriterStart: func(_ context.Context, e *domain.WriterEvent) { calls = append(calls, "second:"+e.Domain.String()) },
		OnRunFinish:   func(context.Context, *domain.RunEvent) { calls = append(calls, "finish") },
	}

	merged := first.Merge(second)
	merged.OnWriterStart(context.Background(), &domain.WriterEvent{Domain: domain.DomainSite})
	merged.OnRunFinish(context.Background(), &domain.RunEvent{})

	assert.Equal(t, []string{"first:site", "second:site", "finish"}, calls)
	assert.Nil(t, merged.OnRunStart)
	assert.Nil(t, merged.OnWriterFinish)
}

func TestSession_Invalidate(t *testing.T) {
	s := domain.NewSession("run-1", "https://example.com/locomotive/api", "tok", nil, nil)
	assert.True(t, s.Valid())

	s.Invalidate()
	s.Invalidate()
	assert.False(t, s.Valid())
}

func TestSSLOptions_Empty(t *testing.T) {
	assert.True(t, domain.SSLOptions{}.Empty())
	assert.False(t, domain.SSLOptions{CAFile: "ca.pem"}.Empty())
	assert.False(t, domain.SSLOptions{ClientPEMPassword: "x"}.Empty())
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := &domain.Snapshot{
		Site:         domain.Site{Name: "Sample"},
		Snippets:     []domain.Snippet{{Slug: "header"}, {Slug: "footer"}},
		ContentTypes: []domain.ContentType{{Slug: "articles"}},
		ContentAssets: []domain.ContentAsset{
			{Path: "samples/cover.png", Filename: "cover.png"},
		},
	}

	assert.Equal(t, 1, snap.Count(domain.DomainSite))
	assert.Equal(t, 2, snap.Count(domain.DomainSnippets))
	assert.Equal(t, 0, snap.Count(domain.DomainPages))
	assert.Equal(t, 1, snap.Count(domain.DomainContentAssets))
	assert.Equal(t, 0, snap.Count(domain.Domain("layouts")))

	ct, ok := snap.ContentType("articles")
	assert.True(t, ok)
	assert.Equal(t, "articles", ct.Slug)
	_, ok = snap.ContentType("events")
	assert.False(t, ok)

	asset, ok := snap.ContentAsset("samples/cover.png")
	assert.True(t, ok)
	assert.Equal(t, "cover.png", asset.Filename)
	_, ok = snap.ContentAsset("cover.png")
	assert.False(t, ok)
}
