package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// TeamboxProviderName is the identifier for Teambox OAuth provider.
	TeamboxProviderName = "teambox"

	// TeamboxAuthorizationURL is the default Teambox authorization endpoint.
	TeamboxAuthorizationURL = "https://teambox.com/oauth/authorize"

	// TeamboxTokenURL is the default Teambox token endpoint.
	TeamboxTokenURL = "https://teambox.com/oauth/token"

	teamboxAccountURL = "https://teambox.com/api/2/account"

	// Teambox implemented OAuth 2.0 before draft 22 renamed the parameter
	// to "access_token" and still expects the old name.
	// See http://developers.teambox.com/docs/api/authentication
	teamboxAccessTokenName = "oauth_token"

	emailTypeWork = "work"
)

// TeamboxProvider implements Provider for Teambox OAuth.
type TeamboxProvider struct {
	client     TokenClient
	profileURL string
}

// NewTeamboxProvider creates a new Teambox OAuth provider.
// Returns an error if ClientID or ClientSecret is empty.
// Empty AuthorizationURL and TokenURL fall back to the Teambox defaults.
func NewTeamboxProvider(cfg TeamboxConfig, opts ...Option) (*TeamboxProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := newOptions(opts...)

	authURL := cfg.AuthorizationURL
	if authURL == "" {
		authURL = TeamboxAuthorizationURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = TeamboxTokenURL
	}

	client := o.tokenClient
	if client == nil {
		c, err := NewClient(ClientConfig{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			AuthURL:      authURL,
			TokenURL:     tokenURL,
			Scopes:       cfg.Scopes,
		}, opts...)
		if err != nil {
			return nil, err
		}
		client = c
	}

	profileURL := o.profileURL
	if profileURL == "" {
		profileURL = teamboxAccountURL
	}

	return &TeamboxProvider{
		client:     client.WithAccessTokenName(teamboxAccessTokenName),
		profileURL: profileURL,
	}, nil
}

// Name returns the provider identifier.
func (p *TeamboxProvider) Name() string {
	return TeamboxProviderName
}

// AuthCodeURL generates the authorization URL.
func (p *TeamboxProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.client.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (p *TeamboxProvider) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	return p.client.Exchange(ctx, code, redirectURI)
}

// Endpoint returns the authorization and token URLs in use.
func (p *TeamboxProvider) Endpoint() oauth2.Endpoint {
	return p.client.Endpoint()
}

// AccessTokenName returns the query parameter the access token is sent under.
func (p *TeamboxProvider) AccessTokenName() string {
	return p.client.AccessTokenName()
}

// UserProfile retrieves the authenticated account from Teambox.
// Errors from the underlying client are returned as is.
// Returns ErrDecodeFailed if the body is not a JSON object of the expected shape.
func (p *TeamboxProvider) UserProfile(ctx context.Context, accessToken string) (*Profile, error) {
	body, err := p.client.Get(ctx, p.profileURL, accessToken)
	if err != nil {
		return nil, err
	}
	return parseTeamboxProfile(body)
}

func parseTeamboxProfile(body []byte) (*Profile, error) {
	raw, err := decodeObject(body)
	if err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode account: %w", err))
	}

	var account teamboxAccount
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode account: %w", err))
	}

	id, err := stringID(raw["id"])
	if err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}

	// A missing name part leaves no dangling space in DisplayName.
	profile := &Profile{
		Provider:    TeamboxProviderName,
		ID:          id,
		DisplayName: strings.TrimSpace(account.FirstName + " " + account.LastName),
		Name: ProfileName{
			GivenName:  account.FirstName,
			FamilyName: account.LastName,
		},
		Emails: []ProfileEmail{{Value: account.Email, Type: emailTypeWork}},
		Raw:    string(body),
		JSON:   raw,
	}

	return profile, nil
}

// decodeObject parses body as a single JSON object, keeping numbers as json.Number.
func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return obj, nil
}

func stringID(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", nil
	case json.Number:
		return id.String(), nil
	case string:
		return id, nil
	default:
		return "", fmt.Errorf("unexpected id type %T", v)
	}
}

// teamboxAccount represents the response from Teambox's account endpoint.
type teamboxAccount struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
