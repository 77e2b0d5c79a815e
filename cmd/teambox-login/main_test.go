package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/teambox/pkg/oauth"
)

func TestVerifyProfile(t *testing.T) {
	p := &oauth.Profile{Provider: "teambox", ID: "1"}
	user, ok, err := verifyProfile(context.Background(), "at", "", p)
	require.NoError(t, err)
	require.True(t, ok)
	require.Same(t, p, user)

	_, ok, err = verifyProfile(context.Background(), "at", "", &oauth.Profile{})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRenderProfile(t *testing.T) {
	w := httptest.NewRecorder()
	renderProfile(w, httptest.NewRequest("GET", "/auth/teambox/callback", nil), &oauth.Profile{
		Provider:    "teambox",
		ID:          "1",
		DisplayName: "Patrick Heneise",
		Raw:         `{"id":1}`,
		Emails:      []oauth.ProfileEmail{{Value: "p@example.com", Type: "work"}},
	})

	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"provider":"teambox","id":"1","display_name":"Patrick Heneise","emails":["p@example.com"]}`, w.Body.String())
}
