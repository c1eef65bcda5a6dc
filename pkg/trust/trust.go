// Package trust turns run options into an authenticated Session: it loads
// optional certificate material, requests a token, and wires both into an
// HTTP client owned by that session alone.
package trust

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/sitepush/internal/logging"
	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds each HTTP call made through a session.
const DefaultTimeout = 60 * time.Second

// Establisher builds sessions against one Engine API.
type Establisher struct {
	api     ports.EngineAPI
	logger  *slog.Logger
	timeout time.Duration
	newID   func() string
}

// Option configures the Establisher.
type Option func(*Establisher)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Establisher) {
		e.logger = logger
	}
}

// WithTimeout sets the per-request timeout of session clients.
func WithTimeout(d time.Duration) Option {
	return func(e *Establisher) {
		e.timeout = d
	}
}

// WithIDGenerator overrides how session (run) IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(e *Establisher) {
		e.newID = fn
	}
}

// New creates an Establisher for api.
func New(api ports.EngineAPI, opts ...Option) *Establisher {
	e := &Establisher{
		api:     api,
		logger:  logging.NewNop(),
		timeout: DefaultTimeout,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Establish loads trust material (if any) before any network call, then
// requests a token with exactly one credential mode. Failures come back as
// *domain.TrustSetupError or *domain.AuthenticationError.
func (e *Establisher) Establish(ctx context.Context, opts config.Options) (*domain.Session, error) {
	var tlsConfig *tls.Config
	if ssl := opts.SSL(); !ssl.Empty() {
		if ssl.ClientPEMFile == "" && ssl.ClientPEMPassword != "" {
			e.logger.Warn("client_pem_password set without client_pem_file, ignoring it")
		}
		cfg, err := e.api.ClientCertificate(ssl)
		if err != nil {
			return nil, &domain.TrustSetupError{Err: err}
		}
		tlsConfig = cfg
	}

	creds, err := opts.Credentials()
	if err != nil {
		return nil, &domain.AuthenticationError{Err: err}
	}

	base := newTransport(tlsConfig)
	anon := &http.Client{Transport: base, Timeout: e.timeout}

	token, err := e.api.Token(ctx, anon, creds)
	if err != nil {
		return nil, &domain.AuthenticationError{Err: err}
	}

	authed := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
		Timeout: e.timeout,
	}

	session := domain.NewSession(e.newID(), opts.URI, token, tlsConfig, authed)
	e.logger.Info("session established",
		"run_id", session.ID,
		"uri", session.URI,
		"mode", creds.Mode,
		"client_cert", opts.ClientPEMFile != "",
	)
	return session, nil
}

// newTransport clones the default transport so that trust material never
// leaks between sessions.
func newTransport(tlsConfig *tls.Config) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		t.TLSClientConfig = tlsConfig.Clone()
	}
	return t
}
