package authflow

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	stateCookiePrefix = "oauth_state_"
	defaultStateTTL   = 10 * time.Minute
	minSecretLength   = 32
)

// StateStore issues and checks the OAuth state parameter.
// The expected state and its issue time live in an HMAC-signed cookie
// scoped to one provider.
type StateStore struct {
	secret []byte
	path   string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// StateOption configures a StateStore.
type StateOption func(*StateStore)

// WithStatePath sets the cookie path. Defaults to "/".
func WithStatePath(path string) StateOption {
	return func(s *StateStore) {
		s.path = path
	}
}

// WithStateTTL sets how long an issued state stays valid.
func WithStateTTL(ttl time.Duration) StateOption {
	return func(s *StateStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithStateClock sets the time source used to stamp and expire states.
func WithStateClock(now func() time.Time) StateOption {
	return func(s *StateStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSecureCookie sets the Secure flag on the state cookie.
func WithSecureCookie(secure bool) StateOption {
	return func(s *StateStore) {
		s.secure = secure
	}
}

// NewStateStore creates a StateStore signing cookies with secret.
// Returns ErrBadSecret if the secret is shorter than 32 bytes.
func NewStateStore(secret string, opts ...StateOption) (*StateStore, error) {
	if len(secret) < minSecretLength {
		return nil, ErrBadSecret
	}
	s := &StateStore{
		secret: []byte(secret),
		path:   "/",
		ttl:    defaultStateTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue generates a new state for provider, stores it in a signed cookie
// and returns it for the authorization URL.
func (s *StateStore) Issue(w http.ResponseWriter, provider string) string {
	state := uuid.NewString()
	payload := strconv.FormatInt(s.now().Unix(), 10) + "|" + state
	http.SetCookie(w, s.cookie(provider, s.sign(payload), int(s.ttl.Seconds())))
	return state
}

// Verify checks state against the cookie issued for provider.
// The cookie is removed whatever the outcome, so a state is usable once.
// States older than the configured TTL are rejected even if the browser
// still presents the cookie.
func (s *StateStore) Verify(w http.ResponseWriter, r *http.Request, provider, state string) error {
	c, err := r.Cookie(stateCookiePrefix + provider)
	if err != nil {
		return ErrInvalidState
	}
	s.Clear(w, provider)

	payload, ok := s.unsign(c.Value)
	if !ok || state == "" {
		return ErrInvalidState
	}
	issued, expected, found := strings.Cut(payload, "|")
	if !found {
		return ErrInvalidState
	}
	unix, err := strconv.ParseInt(issued, 10, 64)
	if err != nil || s.now().Sub(time.Unix(unix, 0)) > s.ttl {
		return ErrInvalidState
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		return ErrInvalidState
	}
	return nil
}

// Clear removes the state cookie for provider.
func (s *StateStore) Clear(w http.ResponseWriter, provider string) {
	http.SetCookie(w, s.cookie(provider, "", -1))
}

// sign encodes value as base64(value).base64(hmac-sha256(value)).
func (s *StateStore) sign(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *StateStore) unsign(raw string) (string, bool) {
	encValue, encSig, found := strings.Cut(raw, ".")
	if !found {
		return "", false
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(value)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", false
	}
	return string(value), true
}

func (s *StateStore) cookie(provider, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     stateCookiePrefix + provider,
		Value:    value,
		Path:     s.path,
		MaxAge:   maxAge,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
