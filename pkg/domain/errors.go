package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownDomain is returned when a domain name is not part of the base order.
var ErrUnknownDomain = errors.New("unknown domain")

// ErrMissingCredentials is returned when neither an API key nor an email/password pair is configured.
var ErrMissingCredentials = errors.New("no api key or email/password configured")

// TrustSetupError reports invalid or unreadable certificate material.
type TrustSetupError struct {
	Err error
}

func (e *TrustSetupError) Error() string {
	return fmt.Sprintf("unable to set client certificate: %v", e.Err)
}

func (e *TrustSetupError) Unwrap() error { return e.Err }

// AuthenticationError reports a failed token acquisition.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("unable to get an API token: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// WriterError identifies the domain whose remote write failed.
type WriterError struct {
	Domain Domain
	Err    error
}

func (e *WriterError) Error() string {
	return fmt.Sprintf("%s writer: %v", e.Domain, e.Err)
}

func (e *WriterError) Unwrap() error { return e.Err }

// FailedDomain returns the domain carried by a WriterError anywhere in err's chain.
func FailedDomain(err error) (Domain, bool) {
	var we *WriterError
	if errors.As(err, &we) {
		return we.Domain, true
	}
	return "", false
}
