package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/identity"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/logger"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

func TestAuth(t *testing.T) {
	newEngine := func(v identity.Verifier) *gin.Engine {
		r := gin.New()
		r.Use(RequestID(), Auth(v, nil))
		r.GET("/me", func(c *gin.Context) {
			id, ok := GetIdentity(c)
			if !ok {
				c.Status(http.StatusTeapot)
				return
			}
			c.String(http.StatusOK, id.UserID+"|"+logger.GetUserID(c.Request.Context()))
		})
		return r
	}
	call := func(r *gin.Engine, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(AuthHeaderKey, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token", func(t *testing.T) {
		v := new(MockVerifier)
		v.On("Verify", mock.Anything, "tok").Return(&identity.Identity{UserID: "u-1"}, nil)

		w := call(newEngine(v), "Bearer tok")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1|u-1", w.Body.String())
		v.AssertExpectations(t)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		v := new(MockVerifier)
		v.On("Verify", mock.Anything, "tok").Return(&identity.Identity{UserID: "u-1"}, nil)

		assert.Equal(t, http.StatusOK, call(newEngine(v), "bearer tok").Code)
	})

	t.Run("missing header", func(t *testing.T) {
		v := new(MockVerifier)
		w := call(newEngine(v), "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
		v.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		v := new(MockVerifier)
		assert.Equal(t, http.StatusUnauthorized, call(newEngine(v), "Basic dXNlcjpwYXNz").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		v := new(MockVerifier)
		v.On("Verify", mock.Anything, "old").Return(nil, identity.ErrExpiredToken)

		w := call(newEngine(v), "Bearer old")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token has expired")
	})

	t.Run("provider unavailable", func(t *testing.T) {
		v := new(MockVerifier)
		v.On("Verify", mock.Anything, "tok").Return(nil, fmt.Errorf("auth provider: %w", shared.ErrUnavailable))

		w := call(newEngine(v), "Bearer tok")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAVAILABLE")
	})

	t.Run("unexpected error", func(t *testing.T) {
		v := new(MockVerifier)
		v.On("Verify", mock.Anything, "tok").Return(nil, errors.New("boom"))

		assert.Equal(t, http.StatusServiceUnavailable, call(newEngine(v), "Bearer tok").Code)
	})
}

func TestGetIdentity_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id, ok := GetIdentity(c)
	assert.False(t, ok)
	assert.Nil(t, id)
}
