package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Options is the configuration of one run. Once handed to a runner it is
// treated as immutable.
type Options struct {
	URI               string   `mapstructure:"uri" yaml:"uri"`
	Email             string   `mapstructure:"email" yaml:"email"`
	Password          string   `mapstructure:"password" yaml:"password"`
	APIKey            string   `mapstructure:"api_key" yaml:"api_key"`
	ClientPEMFile     string   `mapstructure:"client_pem_file" yaml:"client_pem_file"`
	ClientPEMPassword string   `mapstructure:"client_pem_password" yaml:"client_pem_password"`
	SSLCAFile         string   `mapstructure:"ssl_ca_file" yaml:"ssl_ca_file"`
	Data              bool     `mapstructure:"data" yaml:"data"`
	Translations      *bool    `mapstructure:"translations" yaml:"translations"`
	Only              []string `mapstructure:"only" yaml:"only"`
	Force             bool     `mapstructure:"force" yaml:"force"`
	Locales           []string `mapstructure:"locales" yaml:"locales"`
}

// Default returns the options a run starts from before parameters are applied:
// content entries are not pushed, translations are. The zero value behaves
// the same way, since a nil Translations means included.
func Default() Options {
	return Options{}
}

// Bool returns a pointer to v, for setting Translations in literals.
func Bool(v bool) *bool {
	return &v
}

// TranslationsEnabled reports whether translations are pushed. Only an
// explicit false excludes them.
func (o Options) TranslationsEnabled() bool {
	return o.Translations == nil || *o.Translations
}

// Decode applies params on top of Default. Unknown keys are rejected so that
// typos in deploy files do not silently change a run.
func Decode(params map[string]any) (Options, error) {
	opts := Default()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		Metadata:         &md,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			splitCommaHook(),
		),
	})
	if err != nil {
		return Options{}, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return Options{}, fmt.Errorf("invalid run parameters: %w", err)
	}
	return opts.normalized(), nil
}

// splitCommaHook turns "a,b" into []string{"a", "b"} for slice fields.
func splitCommaHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, ","), nil
	}
}

func (o Options) normalized() Options {
	o.URI = strings.TrimRight(strings.TrimSpace(o.URI), "/")
	o.Email = strings.TrimSpace(o.Email)
	o.APIKey = strings.TrimSpace(o.APIKey)
	if o.Only != nil {
		only := make([]string, 0, len(o.Only))
		for _, name := range o.Only {
			name = canonical(name)
			if name != "" {
				only = append(only, name)
			}
		}
		o.Only = only
	}
	return o
}

// canonical folds "Content-Entries" into "content_entries".
func canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "-", "_")
}

// Clone returns a deep copy, so the caller can keep mutating its own value.
func (o Options) Clone() Options {
	o.Only = slices.Clone(o.Only)
	o.Locales = slices.Clone(o.Locales)
	if o.Translations != nil {
		o.Translations = Bool(*o.Translations)
	}
	return o
}

// Includes reports whether name was listed in "only". Names are compared
// the way ParseDomain reads them, so "Content-Entries" matches.
func (o Options) Includes(name string) bool {
	want := canonical(name)
	return slices.ContainsFunc(o.Only, func(n string) bool {
		return canonical(n) == want
	})
}

// SSL extracts the trust material.
func (o Options) SSL() domain.SSLOptions {
	return domain.SSLOptions{
		ClientPEMFile:     o.ClientPEMFile,
		ClientPEMPassword: o.ClientPEMPassword,
		CAFile:            o.SSLCAFile,
	}
}

// Credentials selects exactly one credential mode. An API key wins over
// email/password when both are configured.
func (o Options) Credentials() (domain.Credentials, error) {
	creds := domain.Credentials{URI: o.URI}
	switch {
	case o.APIKey != "":
		creds.Mode = domain.CredentialAPIKey
		creds.APIKey = o.APIKey
	case o.Email != "" && o.Password != "":
		creds.Mode = domain.CredentialPassword
		creds.Email = o.Email
		creds.Password = o.Password
	default:
		return domain.Credentials{}, domain.ErrMissingCredentials
	}
	return creds, nil
}

// Validate checks what can be checked without I/O.
func (o Options) Validate() error {
	var errs []error
	if o.URI == "" {
		errs = append(errs, errors.New("uri is required"))
	} else if u, err := url.Parse(o.URI); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("uri %q must be an absolute http(s) URL", o.URI))
	}
	for _, name := range o.Only {
		if _, err := domain.ParseDomain(name); err != nil {
			errs = append(errs, fmt.Errorf("only: %w", err))
		}
	}
	return errors.Join(errs...)
}
