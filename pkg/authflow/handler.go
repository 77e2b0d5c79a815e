package authflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/teambox/pkg/oauth"
)

// Authenticator is the login strategy a Handler drives.
// *oauth.Strategy satisfies it.
type Authenticator[U any] interface {
	Name() string
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Authenticate(ctx context.Context, code, redirectURI string) (U, error)
}

// SuccessFunc completes a login, e.g. by starting a session and redirecting.
type SuccessFunc[U any] func(w http.ResponseWriter, r *http.Request, user U)

// ErrorFunc renders a failed login.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Handler.
type Option func(*config)

type config struct {
	onError ErrorFunc
	logger  *slog.Logger
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.onError = fn
		}
	}
}

// WithLogger sets the logger for login outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Handler serves the login redirect and the OAuth callback for one strategy.
type Handler[U any] struct {
	strategy  Authenticator[U]
	states    *StateStore
	onSuccess SuccessFunc[U]
	onError   ErrorFunc
	logger    *slog.Logger
}

// New creates a Handler.
func New[U any](strategy Authenticator[U], states *StateStore, onSuccess SuccessFunc[U], opts ...Option) (*Handler[U], error) {
	if states == nil {
		return nil, ErrMissingStateStore
	}
	if onSuccess == nil {
		return nil, ErrMissingSuccessHandler
	}

	cfg := config{
		onError: DefaultErrorHandler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Handler[U]{
		strategy:  strategy,
		states:    states,
		onSuccess: onSuccess,
		onError:   cfg.onError,
		logger:    cfg.logger.With(slog.String("provider", strategy.Name())),
	}, nil
}

// Routes mounts GET /auth/{provider} and GET /auth/{provider}/callback.
func (h *Handler[U]) Routes(r chi.Router) {
	base := "/auth/" + h.strategy.Name()
	r.Get(base, h.Login)
	r.Get(base+"/callback", h.Callback)
}

// Login redirects the user to the provider's authorization page.
func (h *Handler[U]) Login(w http.ResponseWriter, r *http.Request) {
	state := h.states.Issue(w, h.strategy.Name())
	http.Redirect(w, r, h.strategy.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the authorization code flow.
func (h *Handler[U]) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := h.strategy.Name()

	if providerErr := q.Get("error"); providerErr != "" {
		h.states.Clear(w, name)
		h.fail(w, r, errors.Join(ErrAccessDenied, fmt.Errorf("provider error: %s", providerErr)))
		return
	}

	if err := h.states.Verify(w, r, name, q.Get("state")); err != nil {
		h.fail(w, r, err)
		return
	}

	code := q.Get("code")
	if code == "" {
		h.fail(w, r, ErrMissingCode)
		return
	}

	user, err := h.strategy.Authenticate(r.Context(), code, "")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "login succeeded")
	h.onSuccess(w, r, user)
}

func (h *Handler[U]) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "login failed", slog.Int("status", status), slog.Any("error", err))
	h.onError(w, r, err)
}

// DefaultErrorHandler writes the status text for StatusCode(err).
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusCode(err)
	http.Error(w, http.StatusText(status), status)
}

// StatusCode maps a login error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrMissingCode):
		return http.StatusBadRequest
	case errors.Is(err, ErrAccessDenied), errors.Is(err, oauth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, oauth.ErrExchangeFailed),
		errors.Is(err, oauth.ErrFetchFailed),
		errors.Is(err, oauth.ErrNilResponse),
		errors.Is(err, oauth.ErrRequestFailed),
		errors.Is(err, oauth.ErrDecodeFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
