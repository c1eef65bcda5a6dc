package engineapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/sitepush/internal/logging"
	"github.com/aretw0/sitepush/pkg/domain"
)

// TokenPath is appended to the endpoint uri to request a token.
const TokenPath = "/tokens.json"

// API implements ports.EngineAPI over HTTP.
type API struct {
	logger *slog.Logger
}

// Option configures the API.
type Option func(*API)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// New creates the HTTP Engine API adapter.
func New(opts ...Option) *API {
	a := &API{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ClientCertificate loads opts into a fresh TLS configuration.
func (a *API) ClientCertificate(opts domain.SSLOptions) (*tls.Config, error) {
	cfg, err := LoadTLS(opts)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("trust material loaded",
		"client_cert", opts.ClientPEMFile != "",
		"ca_file", opts.CAFile != "",
	)
	return cfg, nil
}

type tokenRequest struct {
	APIKey   string `json:"api_key,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token posts creds to the token endpoint and returns the issued token.
func (a *API) Token(ctx context.Context, client *http.Client, creds domain.Credentials) (string, error) {
	body := tokenRequest{}
	switch creds.Mode {
	case domain.CredentialAPIKey:
		body.APIKey = creds.APIKey
	case domain.CredentialPassword:
		body.Email = creds.Email
		body.Password = creds.Password
	default:
		return "", domain.ErrMissingCredentials
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, creds.URI+TokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newAPIError(http.MethodPost, TokenPath, resp.StatusCode, data)
	}

	var out tokenResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("token response carried no token")
	}
	a.logger.Debug("token acquired", "mode", creds.Mode)
	return out.Token, nil
}
