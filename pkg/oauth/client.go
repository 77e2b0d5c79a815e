package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// DefaultAccessTokenName is the query parameter defined by RFC 6749 for
// passing an access token to protected resources.
const DefaultAccessTokenName = "access_token"

// TokenClient is the generic OAuth2 capability a provider delegates to:
// building the authorization redirect, trading a code for a token and
// issuing authenticated GET requests.
type TokenClient interface {
	// AuthCodeURL generates the authorization URL for the OAuth flow.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	// A non-empty redirectURI overrides the configured one for this call.
	Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)

	// Get fetches a protected resource and returns the raw response body.
	Get(ctx context.Context, url, accessToken string) ([]byte, error)

	// WithAccessTokenName returns a client that sends the access token
	// under the given query parameter name.
	WithAccessTokenName(name string) TokenClient

	// AccessTokenName reports the query parameter used by Get.
	AccessTokenName() string

	// Endpoint reports the configured authorization and token URLs.
	Endpoint() oauth2.Endpoint
}

// Client implements TokenClient on top of golang.org/x/oauth2.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	config          *oauth2.Config
	httpClient      *http.Client
	logger          *slog.Logger
	accessTokenName string
}

// NewClient creates a generic OAuth2 client.
// Returns an error if ClientID or ClientSecret is empty.
func NewClient(cfg ClientConfig, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := newOptions(opts...)

	name := cfg.AccessTokenName
	if name == "" {
		name = DefaultAccessTokenName
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient:      o.httpClient,
		logger:          o.logger,
		accessTokenName: name,
	}, nil
}

// AuthCodeURL generates the authorization URL.
func (c *Client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return c.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	cfg := c.config
	if redirectURI != "" {
		cfg = &oauth2.Config{
			ClientID:     c.config.ClientID,
			ClientSecret: c.config.ClientSecret,
			RedirectURL:  redirectURI,
			Scopes:       c.config.Scopes,
			Endpoint:     c.config.Endpoint,
		}
	}

	token, err := cfg.Exchange(c.contextWithHTTPClient(ctx), code)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	return token, nil
}

// Get issues a single GET to rawURL with the access token attached as a
// query parameter. Any non-2xx status is reported as a *StatusError
// joined with ErrRequestFailed.
func (c *Client) Get(ctx context.Context, rawURL, accessToken string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("parse url: %w", err))
	}
	endpoint := u.Scheme + "://" + u.Host + u.Path

	q := u.Query()
	q.Set(c.accessTokenName, accessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		// *url.Error embeds the full URL, token included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("get %s: %w", endpoint, err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, fmt.Errorf("unexpected nil response from %s", endpoint))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("read body: %w", err))
	}

	c.logger.DebugContext(ctx, "oauth resource fetched",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Join(ErrRequestFailed, &StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	return body, nil
}

// WithAccessTokenName returns a copy of the client using name as the
// access token query parameter. An empty name returns the receiver.
func (c *Client) WithAccessTokenName(name string) TokenClient {
	if name == "" {
		return c
	}
	cp := *c
	cp.accessTokenName = name
	return &cp
}

// AccessTokenName returns the access token query parameter name.
func (c *Client) AccessTokenName() string {
	return c.accessTokenName
}

// Endpoint returns the configured OAuth2 endpoint.
func (c *Client) Endpoint() oauth2.Endpoint {
	return c.config.Endpoint
}

func (c *Client) client() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return http.DefaultClient
}

func (c *Client) contextWithHTTPClient(ctx context.Context) context.Context {
	if c.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	return ctx
}
