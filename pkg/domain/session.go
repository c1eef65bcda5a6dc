package domain

import (
	"crypto/tls"
	"net/http"
	"sync/atomic"
	"time"
)

// SSLOptions holds the optional trust material of a run.
type SSLOptions struct {
	ClientPEMFile     string
	ClientPEMPassword string
	CAFile            string
}

// Empty reports whether no trust material was configured at all.
func (o SSLOptions) Empty() bool {
	return o.ClientPEMFile == "" && o.ClientPEMPassword == "" && o.CAFile == ""
}

// CredentialMode names how a token is requested.
type CredentialMode string

const (
	CredentialAPIKey   CredentialMode = "api_key"
	CredentialPassword CredentialMode = "password"
)

// Credentials is the single credential set used to request a token.
type Credentials struct {
	URI      string
	Mode     CredentialMode
	APIKey   string
	Email    string
	Password string
}

// Session is the authenticated handle shared by every writer of a run.
// It is created once by the trust step and never mutated afterwards,
// except for Invalidate at the end of the run.
type Session struct {
	ID        string
	URI       string
	Token     string
	TLS       *tls.Config
	CreatedAt time.Time

	client  *http.Client
	invalid atomic.Bool
}

// NewSession builds a Session around an already authenticated client.
func NewSession(id, uri, token string, tlsConfig *tls.Config, client *http.Client) *Session {
	return &Session{
		ID:        id,
		URI:       uri,
		Token:     token,
		TLS:       tlsConfig,
		CreatedAt: time.Now(),
		client:    client,
	}
}

// Client returns the HTTP client carrying this session's trust material and token.
func (s *Session) Client() *http.Client {
	return s.client
}

// Valid reports whether the session has not been invalidated.
func (s *Session) Valid() bool {
	return !s.invalid.Load()
}

// Invalidate marks the session as finished and releases idle connections.
func (s *Session) Invalidate() {
	if s.invalid.Swap(true) {
		return
	}
	if s.client != nil {
		s.client.CloseIdleConnections()
	}
}
