package oauth

import (
	"io"
	"log/slog"
	"net/http"
)

// Option configures an OAuth client, provider or strategy.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	tokenClient TokenClient
	logger      *slog.Logger
	profileURL  string
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// WithHTTPClient sets a custom HTTP client for OAuth requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, proxies).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTokenClient replaces the default x/oauth2 backed client.
// The provider still applies its own access token parameter name on top.
func WithTokenClient(client TokenClient) Option {
	return func(o *options) {
		o.tokenClient = client
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProfileURL overrides the provider's user-info endpoint.
func WithProfileURL(url string) Option {
	return func(o *options) {
		o.profileURL = url
	}
}
