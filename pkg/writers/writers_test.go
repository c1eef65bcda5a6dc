package writers_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aretw0/sitepush/internal/logging"
	"github.com/aretw0/sitepush/internal/testutils"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
	"github.com/aretw0/sitepush/pkg/writers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHost is a minimal ports.Host memoizing its asset writer like the runner does.
type testHost struct {
	session  *domain.Session
	snapshot *domain.Snapshot
	opts     config.Options
	assets   ports.AssetWriter
	builds   int
}

func (h *testHost) Session() *domain.Session   { return h.session }
func (h *testHost) Snapshot() *domain.Snapshot { return h.snapshot }
func (h *testHost) Options() config.Options    { return h.opts }
func (h *testHost) Logger() *slog.Logger       { return logging.NewNop() }

func (h *testHost) ContentAssetsWriter(ctx context.Context) (ports.AssetWriter, error) {
	if h.assets != nil {
		return h.assets, nil
	}
	w := writers.NewContentAssetsWriter()
	if err := w.Prepare(ctx, h); err != nil {
		return nil, err
	}
	h.assets = w
	h.builds++
	return w, nil
}

func newHost(t *testing.T, engine *testutils.FakeEngine, opts config.Options) *testHost {
	t.Helper()
	opts.URI = engine.URI()
	return &testHost{
		session:  testutils.NewSession(t, engine),
		snapshot: testutils.SampleSnapshot(),
		opts:     opts,
	}
}

func write(t *testing.T, host *testHost, d domain.Domain) error {
	t.Helper()
	factory, ok := writers.Registry()[d]
	require.True(t, ok, "no writer for %s", d)
	w := factory()
	require.NoError(t, w.Prepare(context.Background(), host))
	return w.Write(context.Background())
}

func TestRegistry_CoversBaseOrder(t *testing.T) {
	reg := writers.Registry()
	for _, d := range domain.BaseOrder() {
		assert.Contains(t, reg, d)
	}
	assert.NotContains(t, reg, domain.DomainContentAssets)
}

func TestWriters_FullSequence(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Options{Data: true})

	for _, d := range domain.BaseOrder() {
		require.NoError(t, write(t, host, d), "writer %s", d)
	}

	assert.Equal(t, []string{
		"POST /tokens.json",
		"PUT /current_site.json",
		"POST /snippets.json",
		"POST /content_types.json",
		"POST /content_types.json",
		"POST /content_types/authors/entries.json",
		"GET /content_assets.json",
		"POST /content_assets.json",
		"POST /content_types/posts/entries.json",
		"POST /content_types/posts/entries.json",
		"POST /translations.json",
		"POST /pages.json",
		"POST /pages.json",
		"POST /pages.json",
		"POST /theme_assets.json",
		"POST /content_assets.json",
	}, engine.Paths())

	assert.Equal(t, 1, host.builds, "asset writer shared between entries and theme assets")
	assert.Equal(t, 2, host.assets.(*writers.ContentAssetsWriter).Uploaded())
}

func bodiesOf(t *testing.T, engine *testutils.FakeEngine, method, path string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, r := range engine.Requests() {
		if r.Method == method && r.Path == "/locomotive/api"+path {
			var body map[string]any
			require.NoError(t, json.Unmarshal(r.Body, &body))
			out = append(out, body)
		}
	}
	return out
}

func TestPagesWriter_ParentsFirst(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Default())

	require.NoError(t, write(t, host, domain.DomainPages))

	var order []string
	for _, body := range bodiesOf(t, engine, http.MethodPost, "/pages.json") {
		order = append(order, body["page"].(map[string]any)["fullpath"].(string))
	}
	assert.Equal(t, []string{"index", "posts", "posts/template"}, order)
}

func TestPagesWriter_UnknownContentType(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Default())
	host.snapshot.Pages = []domain.Page{{FullPath: "events/template", ContentType: "events"}}

	err := write(t, host, domain.DomainPages)
	assert.ErrorContains(t, err, `unknown content type "events"`)
	assert.Zero(t, engine.Count(http.MethodPost, "/pages.json"))
}

func TestContentEntriesWriter_ReplacesAssetPaths(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Options{Data: true})

	require.NoError(t, write(t, host, domain.DomainContentEntries))

	bodies := bodiesOf(t, engine, http.MethodPost, "/content_types/posts/entries.json")
	require.Len(t, bodies, 2)
	entry := bodies[0]["content_entry"].(map[string]any)
	assert.Equal(t, "/samples/assets/cover.png", entry["cover"])
	assert.Equal(t, "hello", entry["_slug"])
	assert.Equal(t, 1, engine.Count(http.MethodPost, "/content_assets.json"))
}

func TestContentAssetsWriter_SkipsUnchangedRemoteAssets(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	engine.SeedContentAsset("cover.png", writers.Checksum([]byte("png-bytes")))
	engine.SeedContentAsset("logo.png", writers.Checksum([]byte("old-logo")))
	host := newHost(t, engine, config.Default())

	assets, err := host.ContentAssetsWriter(context.Background())
	require.NoError(t, err)

	url, err := assets.Upload(context.Background(), host.snapshot.ContentAssets[0])
	require.NoError(t, err)
	assert.Equal(t, "/samples/assets/cover.png", url)
	assert.Zero(t, engine.Count(http.MethodPost, "/content_assets.json"))

	_, err = assets.Upload(context.Background(), host.snapshot.ContentAssets[1])
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Count(http.MethodPost, "/content_assets.json"), "changed checksum is uploaded")
}

func TestContentAssetsWriter_SameFilenameInDifferentFolders(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Default())
	light := domain.ContentAsset{Path: "light/logo.png", Filename: "logo.png", Data: []byte("light")}
	dark := domain.ContentAsset{Path: "dark/logo.png", Filename: "logo.png", Data: []byte("dark")}

	assets, err := host.ContentAssetsWriter(context.Background())
	require.NoError(t, err)
	for range 2 {
		for _, a := range []domain.ContentAsset{light, dark} {
			_, err := assets.Upload(context.Background(), a)
			require.NoError(t, err)
		}
	}

	assert.Equal(t, 2, engine.Count(http.MethodPost, "/content_assets.json"), "each file is sent once")
	assert.Equal(t, 2, assets.(*writers.ContentAssetsWriter).Uploaded())
}

func TestContentAssetsWriter_PrepareFailure(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	engine.FailOn("/content_assets.json", http.StatusInternalServerError)
	host := newHost(t, engine, config.Options{Data: true})

	err := write(t, host, domain.DomainContentEntries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forced failure")
}

func TestUpsert_ConflictKeepsRemoteWithoutForce(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	engine.FailOn("/snippets.json", http.StatusConflict)
	host := newHost(t, engine, config.Default())

	require.NoError(t, write(t, host, domain.DomainSnippets))
	assert.Zero(t, engine.Count(http.MethodPut, "/snippets/header.json"))
}

func TestUpsert_ConflictUpdatesWithForce(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	engine.FailOn("/snippets.json", http.StatusUnprocessableEntity)
	host := newHost(t, engine, config.Options{Force: true})

	require.NoError(t, write(t, host, domain.DomainSnippets))
	assert.Equal(t, 1, engine.Count(http.MethodPut, "/snippets/header.json"))
}

func TestUpsert_OtherErrorsFail(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	engine.FailOn("/content_types.json", http.StatusInternalServerError)
	host := newHost(t, engine, config.Default())

	err := write(t, host, domain.DomainContentTypes)
	assert.ErrorContains(t, err, `content type "authors"`)
}

func TestTranslationsWriter_LocaleFilter(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Options{Locales: []string{"fr"}})

	require.NoError(t, write(t, host, domain.DomainTranslations))

	bodies := bodiesOf(t, engine, http.MethodPost, "/translations.json")
	require.Len(t, bodies, 1)
	values := bodies[0]["translation"].(map[string]any)["values"].(map[string]any)
	assert.Equal(t, map[string]any{"fr": "Lire la suite"}, values)
}

func TestContentTypesWriter_UnknownRelationTarget(t *testing.T) {
	engine := testutils.NewFakeEngine(t)
	host := newHost(t, engine, config.Default())
	host.snapshot.ContentTypes = host.snapshot.ContentTypes[1:] // drop "authors"

	err := write(t, host, domain.DomainContentTypes)
	assert.ErrorContains(t, err, `unknown content type "authors"`)
}
