package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/identity"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

func newProvider(t *testing.T, handler http.HandlerFunc) *RemoteVerifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRemoteVerifier(config.AuthConfig{
		Mode:        "remote",
		ProviderURL: srv.URL + "/",
		APIKey:      "anon-key",
		Timeout:     2 * time.Second,
	}, zap.NewNop())
}

func TestRemoteVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves user", func(t *testing.T) {
		v := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
			assert.Equal(t, "anon-key", r.Header.Get("apikey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"u-1","email":"ayse@example.com","role":"authenticated","user_metadata":{"full_name":"Ayşe Kaya"}}`))
		})

		id, err := v.Verify(ctx, "good-token")
		require.NoError(t, err)
		assert.Equal(t, "u-1", id.UserID)
		assert.Equal(t, "Ayşe Kaya", id.FullName)
		assert.Equal(t, "authenticated", id.Role)
	})

	t.Run("unauthorized token", func(t *testing.T) {
		v := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := v.Verify(ctx, "bad-token")
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("provider failure is unavailable", func(t *testing.T) {
		v := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := v.Verify(ctx, "token")
		assert.ErrorIs(t, err, shared.ErrUnavailable)
	})

	t.Run("missing token", func(t *testing.T) {
		v := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("provider must not be called")
		})
		_, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, identity.ErrMissingToken)
	})
}

func TestNewVerifier(t *testing.T) {
	assert.IsType(t, &JWTVerifier{}, NewVerifier(config.AuthConfig{Mode: "jwt"}, zap.NewNop()))
	assert.IsType(t, &RemoteVerifier{}, NewVerifier(config.AuthConfig{Mode: "remote", ProviderURL: "http://x"}, zap.NewNop()))
}
