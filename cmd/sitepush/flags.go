package main

import (
	"strconv"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/spf13/cobra"
)

// optionFlags maps command-line flags to run option keys.
var optionFlags = map[string]string{
	"uri":                 domain.KeyURI,
	"email":               domain.KeyEmail,
	"password":            domain.KeyPassword,
	"api-key":             domain.KeyAPIKey,
	"client-pem-file":     domain.KeyClientPEMFile,
	"client-pem-password": domain.KeyClientPEMPassword,
	"ssl-ca-file":         domain.KeySSLCAFile,
	"data":                domain.KeyData,
	"only":                domain.KeyOnly,
	"force":               domain.KeyForce,
	"locales":             domain.KeyLocales,
}

func addOptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("uri", "", "Engine API endpoint, e.g. https://www.example.com/locomotive/api")
	f.String("email", "", "Account email (prompts for the password on a terminal)")
	f.String("password", "", "Account password")
	f.String("api-key", "", "API key; takes precedence over email and password")
	f.String("client-pem-file", "", "PEM file holding the client certificate and key")
	f.String("client-pem-password", "", "Password of an encrypted client key")
	f.String("ssl-ca-file", "", "CA bundle used to verify the endpoint")
	f.Bool("data", false, "Push content entries")
	f.Bool("no-translations", false, "Skip translations")
	f.StringSlice("only", nil, "Domains to include regardless of other flags")
	f.Bool("force", false, "Overwrite remote resources that already exist")
	f.StringSlice("locales", nil, "Restrict translations to these locales")
}

// collectParams returns the option values explicitly set on the command
// line, so that unset flags do not override the deploy file.
func collectParams(cmd *cobra.Command) map[string]any {
	params := make(map[string]any)
	f := cmd.Flags()
	for flag, key := range optionFlags {
		if !f.Changed(flag) {
			continue
		}
		switch flag {
		case "only", "locales":
			v, _ := f.GetStringSlice(flag)
			params[key] = v
		default:
			params[key] = f.Lookup(flag).Value.String()
		}
	}
	if f.Changed("no-translations") {
		skip, _ := f.GetBool("no-translations")
		params[domain.KeyTranslations] = strconv.FormatBool(!skip)
	}
	return params
}
