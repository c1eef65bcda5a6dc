package testutils

import (
	"context"
	"testing"

	"github.com/aretw0/sitepush/pkg/adapters/engineapi"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/trust"
	"github.com/stretchr/testify/require"
)

// NewSession authenticates against f with the good API key.
func NewSession(t *testing.T, f *FakeEngine) *domain.Session {
	t.Helper()
	session, err := trust.New(engineapi.New()).Establish(context.Background(), config.Options{
		URI:    f.URI(),
		APIKey: GoodAPIKey,
	})
	require.NoError(t, err)
	return session
}

// SampleSnapshot returns a small site touching every domain.
func SampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Site: domain.Site{
			Name:    "Sample",
			Locales: []string{"en", "fr"},
		},
		Snippets: []domain.Snippet{
			{Slug: "header", Name: "Header", Template: map[string]string{"en": "<header/>"}},
		},
		ContentTypes: []domain.ContentType{
			{
				Slug:       "authors",
				Name:       "Authors",
				LabelField: "name",
				Fields:     []domain.ContentField{{Name: "name", Type: "string", Required: true}},
			},
			{
				Slug:       "posts",
				Name:       "Posts",
				LabelField: "title",
				Fields: []domain.ContentField{
					{Name: "title", Type: "string", Required: true},
					{Name: "cover", Type: "file"},
					{Name: "author", Type: "belongs_to", ClassSlug: "authors"},
				},
			},
		},
		ContentEntries: []domain.ContentEntry{
			{ContentType: "authors", Slug: "jane", Attributes: map[string]any{"name": "Jane"}},
			{ContentType: "posts", Slug: "hello", Attributes: map[string]any{"title": "Hello", "cover": "samples/cover.png"}, Assets: []string{"samples/cover.png"}},
			{ContentType: "posts", Slug: "again", Attributes: map[string]any{"title": "Again", "cover": "samples/cover.png"}, Assets: []string{"samples/cover.png"}},
		},
		Translations: []domain.Translation{
			{Key: "read_more", Values: map[string]string{"en": "Read more", "fr": "Lire la suite"}},
		},
		Pages: []domain.Page{
			{FullPath: "posts/template", Title: map[string]string{"en": "Post"}, ContentType: "posts", Published: true},
			{FullPath: "posts", Title: map[string]string{"en": "Posts"}, Published: true},
			{FullPath: "index", Title: map[string]string{"en": "Home"}, Published: true},
		},
		ThemeAssets: []domain.ThemeAsset{
			{Folder: "stylesheets", Path: "stylesheets/app.css", Data: []byte("body{}")},
		},
		ContentAssets: []domain.ContentAsset{
			{Path: "samples/cover.png", Filename: "cover.png", Data: []byte("png-bytes")},
			{Path: "samples/logo.png", Filename: "logo.png", Data: []byte("logo-bytes")},
		},
	}
}
