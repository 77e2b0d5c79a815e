package authflow_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/teambox/pkg/authflow"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func issueState(t *testing.T, s *authflow.StateStore, provider string) (string, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	state := s.Issue(w, provider)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return state, cookies[0]
}

func TestNewStateStore(t *testing.T) {
	t.Parallel()

	t.Run("short secret", func(t *testing.T) {
		t.Parallel()
		s, err := authflow.NewStateStore("too-short")
		require.ErrorIs(t, err, authflow.ErrBadSecret)
		require.Nil(t, s)
	})

	t.Run("cookie attributes", func(t *testing.T) {
		t.Parallel()
		s, err := authflow.NewStateStore(testSecret,
			authflow.WithStatePath("/auth"),
			authflow.WithStateTTL(time.Minute),
			authflow.WithSecureCookie(true),
		)
		require.NoError(t, err)

		state, c := issueState(t, s, "teambox")
		require.NotEmpty(t, state)
		require.Equal(t, "oauth_state_teambox", c.Name)
		require.Equal(t, "/auth", c.Path)
		require.Equal(t, 60, c.MaxAge)
		require.True(t, c.Secure)
		require.True(t, c.HttpOnly)
		require.NotContains(t, c.Value, state)
	})
}

func TestStateStore_Verify(t *testing.T) {
	t.Parallel()

	s, err := authflow.NewStateStore(testSecret)
	require.NoError(t, err)

	t.Run("matching state", func(t *testing.T) {
		t.Parallel()
		state, c := issueState(t, s, "teambox")

		r := httptest.NewRequest(http.MethodGet, "/auth/teambox/callback", nil)
		r.AddCookie(c)
		w := httptest.NewRecorder()
		require.NoError(t, s.Verify(w, r, "teambox", state))

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		require.Equal(t, -1, cleared[0].MaxAge)
	})

	t.Run("states are unique", func(t *testing.T) {
		t.Parallel()
		first, _ := issueState(t, s, "teambox")
		second, _ := issueState(t, s, "teambox")
		require.NotEqual(t, first, second)
	})

	t.Run("mismatched state", func(t *testing.T) {
		t.Parallel()
		_, c := issueState(t, s, "teambox")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.ErrorIs(t, s.Verify(httptest.NewRecorder(), r, "teambox", "other"), authflow.ErrInvalidState)
	})

	t.Run("empty state", func(t *testing.T) {
		t.Parallel()
		_, c := issueState(t, s, "teambox")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.ErrorIs(t, s.Verify(httptest.NewRecorder(), r, "teambox", ""), authflow.ErrInvalidState)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		require.ErrorIs(t, s.Verify(httptest.NewRecorder(), r, "teambox", "state"), authflow.ErrInvalidState)
	})

	t.Run("cookie for another provider", func(t *testing.T) {
		t.Parallel()
		state, c := issueState(t, s, "github")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.ErrorIs(t, s.Verify(httptest.NewRecorder(), r, "teambox", state), authflow.ErrInvalidState)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		t.Parallel()
		state, c := issueState(t, s, "teambox")
		c.Value = "x" + c.Value

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.ErrorIs(t, s.Verify(httptest.NewRecorder(), r, "teambox", state), authflow.ErrInvalidState)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		t.Parallel()
		other, err := authflow.NewStateStore("another-32-byte-or-longer-secret!")
		require.NoError(t, err)
		state, c := issueState(t, other, "teambox")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.ErrorIs(t, s.Verify(httptest.NewRecorder(), r, "teambox", state), authflow.ErrInvalidState)
	})

	t.Run("expired state", func(t *testing.T) {
		t.Parallel()
		issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		issuer, err := authflow.NewStateStore(testSecret,
			authflow.WithStateTTL(time.Minute),
			authflow.WithStateClock(func() time.Time { return issuedAt }),
		)
		require.NoError(t, err)
		state, c := issueState(t, issuer, "teambox")

		fresh, err := authflow.NewStateStore(testSecret,
			authflow.WithStateTTL(time.Minute),
			authflow.WithStateClock(func() time.Time { return issuedAt.Add(30 * time.Second) }),
		)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.NoError(t, fresh.Verify(httptest.NewRecorder(), r, "teambox", state))

		late, err := authflow.NewStateStore(testSecret,
			authflow.WithStateTTL(time.Minute),
			authflow.WithStateClock(func() time.Time { return issuedAt.Add(2 * time.Minute) }),
		)
		require.NoError(t, err)
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		require.ErrorIs(t, late.Verify(httptest.NewRecorder(), r, "teambox", state), authflow.ErrInvalidState)
	})
}
