package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) (*Session, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := New(srv.URL)
	return NewSession(api), api
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"success": status < 400,
		"data":    data,
	})
}

func TestLoginStoresToken(t *testing.T) {
	s, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/verify", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "demo@drew.events", body["email"])
		writeEnvelope(w, http.StatusOK, map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": "u1", "email": "demo@drew.events"},
		})
	})

	u, err := s.Login(context.Background(), "demo@drew.events", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "tok-123", api.Tokens.Token())
}

func TestCurrentUserWithoutTokenIsSignedOut(t *testing.T) {
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without a token")
	})

	u, ok := s.CurrentUser(context.Background())
	assert.Nil(t, u)
	assert.False(t, ok)
}

func TestCurrentUserAnyFailureIsSignedOut(t *testing.T) {
	s, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	api.Tokens.SetToken("stale")

	u, ok := s.CurrentUser(context.Background())
	assert.Nil(t, u)
	assert.False(t, ok)
}

func TestUnauthorizedClearsTokenAndRemembersPath(t *testing.T) {
	s, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	api.Tokens.SetToken("expired")

	var remembered string
	api.OnUnauthorized = func(path string) { remembered = path }

	u, ok := s.CurrentUser(context.Background())
	assert.Nil(t, u)
	assert.False(t, ok)
	assert.Empty(t, api.Tokens.Token())
	assert.Equal(t, "/api/user/me", remembered)
}

func TestLogoutClearsLocallyEvenWhenServerFails(t *testing.T) {
	s, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	api.Tokens.SetToken("tok")
	api.Cache.Set(keyCurrentUser(), json.RawMessage(`{"id":"u1"}`))

	s.Logout(context.Background())

	assert.Empty(t, api.Tokens.Token())
	_, ok := api.Cache.Get(keyCurrentUser())
	assert.False(t, ok)
}

func TestCurrentUserServedFromCache(t *testing.T) {
	calls := 0
	s, api := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeEnvelope(w, http.StatusOK, map[string]any{"id": "u1", "email": "a@b.c"})
	})
	api.Tokens.SetToken("tok")

	_, ok := s.CurrentUser(context.Background())
	require.True(t, ok)
	_, ok = s.CurrentUser(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1, calls)
}
