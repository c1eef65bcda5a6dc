package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/sitepush/internal/testutils"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteYAML = `
site:
  name: Sample
  locales: [en, fr]
snippets:
  - slug: header
    name: Header
    template:
      en: "<header/>"
content_types:
  - slug: posts
    name: Posts
    fields:
      - name: title
        type: string
      - name: cover
        type: file
content_entries:
  - content_type: posts
    _slug: hello
    attributes:
      title: Hello
      cover: samples/cover.png
      tags:
        primary: news
    assets: [samples/cover.png]
pages:
  - fullpath: index
    title: {en: Home}
    published: true
theme_assets:
  - folder: stylesheets
    path: stylesheets/app.css
content_assets:
  - path: samples/cover.png
    source: public/cover.png
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func TestLoadFile_YAML(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"site.yaml":           siteYAML,
		"stylesheets/app.css": "body{}",
		"public/cover.png":    "png-bytes",
	})

	s, err := snapshot.LoadFile(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Sample", s.Site.Name)
	assert.Equal(t, []string{"en", "fr"}, s.Site.Locales)
	require.Len(t, s.ContentEntries, 1)
	assert.Equal(t, "hello", s.ContentEntries[0].Slug)
	assert.Equal(t, map[string]any{"primary": "news"}, s.ContentEntries[0].Attributes["tags"])

	require.Len(t, s.ThemeAssets, 1)
	assert.Equal(t, []byte("body{}"), s.ThemeAssets[0].Data)

	asset, ok := s.ContentAsset("samples/cover.png")
	require.True(t, ok)
	assert.Equal(t, "cover.png", asset.Filename, "filename defaults to the path base")
	assert.Equal(t, []byte("png-bytes"), asset.Data)

	assert.Equal(t, 1, s.Count(domain.DomainPages))
}

func TestLoadFile_JSON(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"site.json": `{
  "site": {"name": "Json"},
  "translations": [{"key": "read_more", "values": {"en": "Read more"}}],
  "content_assets": [{"path": "logo.png", "filename": "brand.png"}]
}`,
		"logo.png": "logo",
	})

	s, err := snapshot.LoadFile(filepath.Join(dir, "site.json"))
	require.NoError(t, err)
	assert.Equal(t, "Json", s.Site.Name)
	assert.Equal(t, "Read more", s.Translations[0].Values["en"])
	assert.Equal(t, "brand.png", s.ContentAssets[0].Filename)
	assert.Equal(t, []byte("logo"), s.ContentAssets[0].Data)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := snapshot.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		dir := writeTree(t, map[string]string{"site.yaml": "site: [unclosed"})
		_, err := snapshot.LoadFile(filepath.Join(dir, "site.yaml"))
		assert.ErrorContains(t, err, "failed to parse snapshot")
	})

	t.Run("missing asset source", func(t *testing.T) {
		dir := writeTree(t, map[string]string{"site.yaml": siteYAML})
		_, err := snapshot.LoadFile(filepath.Join(dir, "site.yaml"))
		assert.ErrorContains(t, err, `theme asset "stylesheets/app.css"`)
		assert.ErrorContains(t, err, `content asset "samples/cover.png"`)
	})
}

func TestParse_ValidationReportsEveryProblem(t *testing.T) {
	_, err := snapshot.Parse([]byte(`
snippets:
  - slug: a
  - slug: a
content_entries:
  - content_type: ghosts
    _slug: boo
    assets: [missing.png]
pages:
  - fullpath: index
    content_type: ghosts
`), t.TempDir())

	require.Error(t, err)
	for _, want := range []string{
		"site: name is required",
		`snippet "a": duplicate slug`,
		`unknown content type "ghosts"`,
		`unknown content asset "missing.png"`,
		`page "index": unknown content type "ghosts"`,
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidate_SampleSnapshot(t *testing.T) {
	assert.NoError(t, snapshot.Validate(testutils.SampleSnapshot()))
}
