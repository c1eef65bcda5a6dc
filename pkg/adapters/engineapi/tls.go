package engineapi

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/sitepush/pkg/domain"
)

// LoadTLS builds a TLS configuration from opts. A PEM password without a
// PEM file is ignored; a CA file alone yields a CA-only configuration.
func LoadTLS(opts domain.SSLOptions) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if opts.ClientPEMFile != "" {
		cert, err := loadClientCertificate(opts.ClientPEMFile, opts.ClientPEMPassword)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if opts.CAFile != "" {
		caBytes, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caBytes) {
			return nil, fmt.Errorf("invalid ca bundle %s", opts.CAFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

// loadClientCertificate reads a PEM file holding the certificate chain and
// its private key, decrypting the key with password when it is encrypted.
func loadClientCertificate(path, password string) (tls.Certificate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("read client pem: %w", err)
	}

	var certPEM, keyPEM []byte
	for {
		var block *pem.Block
		block, raw = pem.Decode(raw)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
			continue
		}
		//nolint:staticcheck // RFC 1423 encrypted keys
		if x509.IsEncryptedPEMBlock(block) {
			if password == "" {
				return tls.Certificate{}, errors.New("client key is encrypted but no password was given")
			}
			//nolint:staticcheck
			der, err := x509.DecryptPEMBlock(block, []byte(password))
			if err != nil {
				return tls.Certificate{}, fmt.Errorf("decrypt client key: %w", err)
			}
			block = &pem.Block{Type: block.Type, Bytes: der}
		}
		keyPEM = append(keyPEM, pem.EncodeToMemory(block)...)
	}

	if len(certPEM) == 0 {
		return tls.Certificate{}, fmt.Errorf("no certificate found in %s", path)
	}
	if len(keyPEM) == 0 {
		return tls.Certificate{}, fmt.Errorf("no private key found in %s", path)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("parse client key pair: %w", err)
	}
	return cert, nil
}
