package engineapi_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/sitepush/internal/testutils"
	"github.com/aretw0/sitepush/pkg/adapters/engineapi"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTLS(t *testing.T) {
	engine := testutils.NewTLSFakeEngine(t, false)
	ca := testutils.WriteServerCA(t, engine)

	t.Run("CA Only", func(t *testing.T) {
		cfg, err := engineapi.LoadTLS(domain.SSLOptions{CAFile: ca})
		require.NoError(t, err)
		assert.NotNil(t, cfg.RootCAs)
		assert.Empty(t, cfg.Certificates)
	})

	t.Run("Plain Client PEM", func(t *testing.T) {
		cfg, err := engineapi.LoadTLS(domain.SSLOptions{ClientPEMFile: testutils.WriteClientPEM(t, "")})
		require.NoError(t, err)
		assert.Len(t, cfg.Certificates, 1)
		assert.Nil(t, cfg.RootCAs)
	})

	t.Run("Encrypted Client PEM", func(t *testing.T) {
		pemFile := testutils.WriteClientPEM(t, "hunter2")

		cfg, err := engineapi.LoadTLS(domain.SSLOptions{ClientPEMFile: pemFile, ClientPEMPassword: "hunter2", CAFile: ca})
		require.NoError(t, err)
		assert.Len(t, cfg.Certificates, 1)
		assert.NotNil(t, cfg.RootCAs)

		_, err = engineapi.LoadTLS(domain.SSLOptions{ClientPEMFile: pemFile})
		assert.ErrorContains(t, err, "no password")

		_, err = engineapi.LoadTLS(domain.SSLOptions{ClientPEMFile: pemFile, ClientPEMPassword: "wrong"})
		assert.Error(t, err)
	})

	t.Run("Password Without File", func(t *testing.T) {
		cfg, err := engineapi.LoadTLS(domain.SSLOptions{ClientPEMPassword: "unused"})
		require.NoError(t, err)
		assert.Empty(t, cfg.Certificates)
	})

	t.Run("Unreadable Files", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.pem")

		_, err := engineapi.LoadTLS(domain.SSLOptions{ClientPEMFile: missing})
		assert.ErrorContains(t, err, "read client pem")

		_, err = engineapi.LoadTLS(domain.SSLOptions{CAFile: missing})
		assert.ErrorContains(t, err, "read ca file")
	})

	t.Run("Garbage Contents", func(t *testing.T) {
		junk := testutils.WriteFile(t, "junk.pem", []byte("not a pem"))

		_, err := engineapi.LoadTLS(domain.SSLOptions{ClientPEMFile: junk})
		assert.ErrorContains(t, err, "no certificate found")

		_, err = engineapi.LoadTLS(domain.SSLOptions{CAFile: junk})
		assert.ErrorContains(t, err, "invalid ca bundle")
	})
}
