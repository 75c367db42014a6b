package usersclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CheckUser(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/user-1", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"id":"user-1"}`))
		}))
		defer server.Close()

		err := NewClient(server.URL).CheckUser(ctx, "user-1")
		assert.NoError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"User not found"}`))
		}))
		defer server.Close()

		err := NewClient(server.URL).CheckUser(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("structured upstream error carries its message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthorized"}`))
		}))
		defer server.Close()

		err := NewClient(server.URL).CheckUser(ctx, "user-1")
		var upstream *UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
		assert.Equal(t, "Unauthorized", upstream.Message)
	})

	t.Run("unstructured upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		err := NewClient(server.URL).CheckUser(ctx, "user-1")
		require.Error(t, err)
		var upstream *UpstreamError
		assert.False(t, errors.As(err, &upstream))
	})

	t.Run("unreachable service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		err := NewClient(server.URL).CheckUser(ctx, "user-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
