package testutils

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Valid credentials accepted by FakeEngine.
const (
	GoodAPIKey   = "good-key"
	GoodEmail    = "admin@example.com"
	GoodPassword = "secret"
	IssuedToken  = "tok-123"
)

// Request is one call recorded by FakeEngine.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// FakeEngine is an in-process Engine API. It issues tokens for the Good*
// credentials, accepts any authenticated write, and can be told to fail
// specific paths.
type FakeEngine struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []Request
	failures map[string]int
	assets   []map[string]any
}

// NewFakeEngine starts a plain HTTP fake engine, closed at test cleanup.
func NewFakeEngine(t *testing.T) *FakeEngine {
	t.Helper()
	f := newFakeEngine()
	f.Server = httptest.NewServer(f.router())
	t.Cleanup(f.Server.Close)
	return f
}

// NewTLSFakeEngine starts the fake engine behind TLS, optionally demanding
// a client certificate during the handshake.
func NewTLSFakeEngine(t *testing.T, requireClientCert bool) *FakeEngine {
	t.Helper()
	f := newFakeEngine()
	f.Server = httptest.NewUnstartedServer(f.router())
	if requireClientCert {
		f.Server.TLS = &tls.Config{ClientAuth: tls.RequireAnyClientCert}
	}
	f.Server.StartTLS()
	t.Cleanup(f.Server.Close)
	return f
}

func newFakeEngine() *FakeEngine {
	return &FakeEngine{failures: make(map[string]int)}
}

// URI is the endpoint to configure runs with.
func (f *FakeEngine) URI() string {
	return f.Server.URL + "/locomotive/api"
}

// FailOn makes every request to path (relative to URI) answer status.
func (f *FakeEngine) FailOn(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures["/locomotive/api"+path] = status
}

// SeedContentAsset pretends an asset already exists remotely.
func (f *FakeEngine) SeedContentAsset(filename, checksum string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets = append(f.assets, map[string]any{
		"filename": filename,
		"checksum": checksum,
		"url":      "/samples/assets/" + filename,
	})
}

// Requests returns a copy of the recorded calls.
func (f *FakeEngine) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Paths returns "METHOD path" for each recorded call, in order.
func (f *FakeEngine) Paths() []string {
	reqs := f.Requests()
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Method + " " + strings.TrimPrefix(r.Path, "/locomotive/api")
	}
	return out
}

// Count returns how many calls hit path with method.
func (f *FakeEngine) Count(method, path string) int {
	n := 0
	for _, p := range f.Paths() {
		if p == method+" "+path {
			n++
		}
	}
	return n
}

func (f *FakeEngine) router() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/locomotive/api", func(r chi.Router) {
		r.Post("/tokens.json", f.token)
		r.Group(func(r chi.Router) {
			r.Use(f.requireToken)
			r.Get("/content_assets.json", f.listAssets)
			r.Post("/content_assets.json", f.createAsset)
			r.HandleFunc("/*", f.accept)
		})
	})
	return r
}

func (f *FakeEngine) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		status, fail := f.failures[r.URL.Path]
		f.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]any{"message": fmt.Sprintf("forced failure on %s", r.URL.Path)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeEngine) token(w http.ResponseWriter, r *http.Request) {
	var body struct {
		APIKey   string `json:"api_key"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}
	ok := body.APIKey == GoodAPIKey || (body.APIKey == "" && body.Email == GoodEmail && body.Password == GoodPassword)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": IssuedToken})
}

func (f *FakeEngine) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+IssuedToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeEngine) listAssets(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	assets := make([]map[string]any, len(f.assets))
	copy(assets, f.assets)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, assets)
}

func (f *FakeEngine) createAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
		return
	}
	_, header, err := r.FormFile("content_asset[source]")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"filename": header.Filename,
		"url":      "/samples/assets/" + header.Filename,
	})
}

func (f *FakeEngine) accept(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"_id": "id-" + chi.URLParam(r, "*")})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
