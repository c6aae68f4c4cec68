package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
)

func TestProfiling(t *testing.T) {
	labelOf := func(c *gin.Context, key string) string {
		v, _ := pprof.Label(c.Request.Context(), key)
		return v
	}

	t.Run("labels requests with route method and controller", func(t *testing.T) {
		r := gin.New()
		r.Use(Profiling(DefaultProfilingConfig()))
		var route, method, controller string
		r.GET("/api/v1/contacts/:id/ledger", func(c *gin.Context) {
			route = labelOf(c, telemetry.ProfilingLabelRoute)
			method = labelOf(c, telemetry.ProfilingLabelMethod)
			controller = labelOf(c, telemetry.ProfilingLabelController)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contacts/42/ledger", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/api/v1/contacts/:id/ledger", route)
		assert.Equal(t, http.MethodGet, method)
		assert.Equal(t, "contacts", controller)
	})

	t.Run("skipped paths are not labeled", func(t *testing.T) {
		r := gin.New()
		r.Use(Profiling(DefaultProfilingConfig()))
		var route string
		r.GET("/health", func(c *gin.Context) {
			route = labelOf(c, telemetry.ProfilingLabelRoute)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, route)
	})

	t.Run("disabled passes through", func(t *testing.T) {
		r := gin.New()
		r.Use(Profiling(ProfilingConfig{}))
		called := false
		r.GET("/api/v1/seasons", func(c *gin.Context) {
			called = true
			assert.Empty(t, labelOf(c, telemetry.ProfilingLabelRoute))
			c.Status(http.StatusOK)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil))
		assert.True(t, called)
	})
}

func TestControllerFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/contacts/:id/ledger", "contacts"},
		{"/api/v2/seasons", "seasons"},
		{"/api/v1/:id", ""},
		{"/health", "health"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, controllerFromRoute(tt.route))
		})
	}
}
