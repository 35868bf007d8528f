package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"urbanfix/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(config.AuthConfig{BaseURL: srv.URL, APIKey: "anon-key", Timeout: 5}, logger)
}

func TestResolve_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"5f1b3e41-2c1a-4b7e-9a71-4cf32a6c8f00","email":"marta@example.com"}`))
	})

	identity, err := client.Resolve(context.Background(), "tok-123")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "5f1b3e41-2c1a-4b7e-9a71-4cf32a6c8f00", identity.ID)
	assert.Equal(t, "marta@example.com", identity.Email)
}

func TestResolve_BadTokenIsNilIdentity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	identity, err := client.Resolve(context.Background(), "expired")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestResolve_EmptyToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty token")
	})

	identity, err := client.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestResolve_ServerErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Resolve(context.Background(), "tok")
	require.Error(t, err)
}
