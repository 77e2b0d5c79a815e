package oauth

// ClientConfig holds the settings of a generic OAuth2 client.
type ClientConfig struct {
	ClientID        string
	ClientSecret    string
	RedirectURL     string
	AuthURL         string
	TokenURL        string
	AccessTokenName string
	Scopes          []string
}

// TeamboxConfig holds Teambox OAuth configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type TeamboxConfig struct {
	ClientID         string   `env:"TEAMBOX_OAUTH_CLIENT_ID,required"`
	ClientSecret     string   `env:"TEAMBOX_OAUTH_CLIENT_SECRET,required"`
	RedirectURL      string   `env:"TEAMBOX_OAUTH_REDIRECT_URL" envDefault:""`
	AuthorizationURL string   `env:"TEAMBOX_OAUTH_AUTHORIZATION_URL" envDefault:"https://teambox.com/oauth/authorize"`
	TokenURL         string   `env:"TEAMBOX_OAUTH_TOKEN_URL" envDefault:"https://teambox.com/oauth/token"`
	Scopes           []string `env:"TEAMBOX_OAUTH_SCOPES" envSeparator:","`
}
