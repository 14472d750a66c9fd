package remote

// AuthConfig holds the OAuth2 client credentials used to obtain a bearer token.
type AuthConfig struct {
	// TokenURL is the token endpoint.
	TokenURL string `mapstructure:"token_url" default:""`
	// GrantType is sent as grant_type.
	GrantType string `mapstructure:"grant_type" default:"client_credentials"`
	// ClientID identifies the client.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret authenticates the client.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// Scopes is a comma separated list of requested scopes.
	Scopes string `mapstructure:"scopes" default:""`
	// StaticToken skips the token request and is sent as is.
	StaticToken string `mapstructure:"static_token" default:""`
}

// APIConfig holds the settings of the remote REST service.
type APIConfig struct {
	// BaseURI is the scheme and host, e.g. https://api.example.com.
	BaseURI string `mapstructure:"base_uri" default:""`
	// BasePath is prepended to every profile endpoint, e.g. /api/v2.
	BasePath string `mapstructure:"base_path" default:""`
	// Proxy is an optional HTTP proxy URL. Empty falls back to the environment.
	Proxy string `mapstructure:"proxy" default:""`
	// TimeoutSeconds bounds each request, including the token request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// OffsetParam is the query parameter carrying the page offset.
	OffsetParam string `mapstructure:"offset_param" default:"offset"`
	// LimitParam is the query parameter carrying the page size.
	LimitParam string `mapstructure:"limit_param" default:"limit"`
}
