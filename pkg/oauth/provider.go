package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile is the canonical cross-provider user identity produced by a
// provider's UserProfile call. A new Profile is built for every call.
type Profile struct {
	JSON        map[string]any // Parsed response, numbers kept as json.Number
	Provider    string
	ID          string // Provider's unique user identifier
	DisplayName string
	Raw         string // Unparsed response body
	Name        ProfileName
	Emails      []ProfileEmail
}

// ProfileName holds the structured parts of a user's name.
type ProfileName struct {
	GivenName  string
	FamilyName string
}

// ProfileEmail is an email address tagged with its kind ("work", "home").
type ProfileEmail struct {
	Value string
	Type  string
}

// Provider abstracts provider-specific OAuth operations.
// Provider implementations handle all provider-specific details internally,
// such as endpoint URLs, token parameter names and response mapping.
type Provider interface {
	// Name returns the provider identifier (e.g., "teambox").
	Name() string

	// AuthCodeURL generates the authorization URL for the OAuth flow.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)

	// UserProfile fetches and normalizes the profile of the token owner.
	// On any failure it returns a nil profile.
	UserProfile(ctx context.Context, accessToken string) (*Profile, error)
}
