package domain

// Option keys understood by the pipeline. They double as mapstructure tags
// on config.Options and as the keys of deploy files.
const (
	KeyURI               = "uri"
	KeyEmail             = "email"
	KeyPassword          = "password"
	KeyAPIKey            = "api_key"
	KeyClientPEMFile     = "client_pem_file"
	KeyClientPEMPassword = "client_pem_password"
	KeySSLCAFile         = "ssl_ca_file"
	KeyData              = "data"
	KeyTranslations      = "translations"
	KeyOnly              = "only"
	KeyForce             = "force"
	KeyLocales           = "locales"
)
