package oauth

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"
)

// VerifyFunc maps an authenticated provider profile to an application user.
// Returning ok == false with a nil error rejects the login without failing it.
type VerifyFunc[U any] func(ctx context.Context, accessToken, refreshToken string, profile *Profile) (user U, ok bool, err error)

// Strategy runs the authorization-code login against a single provider and
// hands the resulting profile to the application's verify callback.
type Strategy[U any] struct {
	provider Provider
	verify   VerifyFunc[U]
	logger   *slog.Logger
}

// NewStrategy creates a login strategy for the given provider.
// Returns ErrMissingProvider if provider is nil and ErrMissingVerify if verify is nil.
func NewStrategy[U any](provider Provider, verify VerifyFunc[U], opts ...Option) (*Strategy[U], error) {
	if provider == nil {
		return nil, ErrMissingProvider
	}
	if verify == nil {
		return nil, ErrMissingVerify
	}
	o := newOptions(opts...)
	return &Strategy[U]{
		provider: provider,
		verify:   verify,
		logger:   o.logger.With(slog.String("provider", provider.Name())),
	}, nil
}

// NewTeamboxStrategy builds a Teambox provider from cfg and wraps it in a Strategy.
func NewTeamboxStrategy[U any](cfg TeamboxConfig, verify VerifyFunc[U], opts ...Option) (*Strategy[U], error) {
	if verify == nil {
		return nil, ErrMissingVerify
	}
	p, err := NewTeamboxProvider(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewStrategy(p, verify, opts...)
}

// Name returns the identifier of the underlying provider.
func (s *Strategy[U]) Name() string {
	return s.provider.Name()
}

// Provider returns the underlying provider.
func (s *Strategy[U]) Provider() Provider {
	return s.provider
}

// AuthCodeURL generates the provider's authorization URL.
func (s *Strategy[U]) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return s.provider.AuthCodeURL(state, opts...)
}

// Authenticate exchanges the code, loads the profile and verifies the user.
// Returns ErrInvalidCredentials when the verify callback rejects the profile.
func (s *Strategy[U]) Authenticate(ctx context.Context, code, redirectURI string) (U, error) {
	var zero U

	token, err := s.provider.Exchange(ctx, code, redirectURI)
	if err != nil {
		return zero, err
	}

	profile, err := s.provider.UserProfile(ctx, token.AccessToken)
	if err != nil {
		return zero, err
	}

	user, ok, err := s.verify(ctx, token.AccessToken, token.RefreshToken, profile)
	if err != nil {
		return zero, err
	}
	if !ok {
		s.logger.InfoContext(ctx, "user rejected by verify callback", slog.String("profile_id", profile.ID))
		return zero, ErrInvalidCredentials
	}

	s.logger.DebugContext(ctx, "user authenticated", slog.String("profile_id", profile.ID))
	return user, nil
}
