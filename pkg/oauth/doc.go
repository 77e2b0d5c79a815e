// Package oauth provides a Teambox OAuth2 authorization code strategy.
//
// The package is split into three layers:
//
//   - Client, a generic OAuth2 client over golang.org/x/oauth2 that builds
//     authorization URLs, exchanges codes and fetches protected resources
//     with the access token sent as a configurable query parameter
//   - TeamboxProvider, which fixes the Teambox endpoints, switches the token
//     parameter to "oauth_token" and normalizes the account response into a
//     Profile
//   - Strategy, which runs exchange, profile fetch and the application's
//     verify callback for a login attempt
//
// # Usage
//
//	strategy, err := oauth.NewTeamboxStrategy(oauth.TeamboxConfig{
//		ClientID:     os.Getenv("TEAMBOX_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("TEAMBOX_OAUTH_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/auth/teambox/callback",
//	}, func(ctx context.Context, accessToken, refreshToken string, p *oauth.Profile) (*User, bool, error) {
//		u, err := users.FindOrCreate(ctx, p.Provider, p.ID)
//		if err != nil {
//			return nil, false, err
//		}
//		return u, u != nil, nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Redirect the user
//	url := strategy.AuthCodeURL("random-state-string")
//
//	// In the callback handler
//	user, err := strategy.Authenticate(ctx, code, "")
//
// The provider can also be used on its own:
//
//	provider, err := oauth.NewTeamboxProvider(cfg)
//	profile, err := provider.UserProfile(ctx, token.AccessToken)
//
// # Profile
//
// Profile follows the cross-provider convention: Provider, ID, DisplayName,
// Name{GivenName, FamilyName}, Emails (a single "work" address for Teambox),
// plus Raw (response body) and JSON (parsed body, numbers as json.Number).
// Numeric Teambox ids are returned in ID as their decimal string.
//
// # Testing
//
// Use WithHTTPClient to route provider hosts to a test handler, or
// WithTokenClient to replace the client entirely:
//
//	provider, err := oauth.NewTeamboxProvider(cfg, oauth.WithHTTPClient(ts.Client()))
//
// # Error Handling
//
//   - ErrMissingClientID, ErrMissingClientSecret: constructor called without credentials
//   - ErrMissingVerify: strategy built without a verify callback
//   - ErrExchangeFailed: code for token exchange failed
//   - ErrFetchFailed: HTTP request to provider failed
//   - ErrNilResponse: provider returned nil HTTP response
//   - ErrRequestFailed: provider returned non-2xx status (see StatusError)
//   - ErrDecodeFailed: response is not a JSON object of the expected shape
//   - ErrInvalidCredentials: verify callback rejected the user
//
// Client errors reach the caller of UserProfile unchanged; nothing is retried.
package oauth
