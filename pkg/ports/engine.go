package ports

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/aretw0/sitepush/pkg/domain"
)

// EngineAPI is the remote content-management API, seen from the trust step.
type EngineAPI interface {
	// ClientCertificate loads client certificate and CA material into a TLS
	// configuration owned by the caller. It must not touch process-wide state.
	ClientCertificate(opts domain.SSLOptions) (*tls.Config, error)

	// Token exchanges credentials for an API token. The client already carries
	// the session's trust material.
	Token(ctx context.Context, client *http.Client, creds domain.Credentials) (string, error)
}
