package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddleware_LevelFollowsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			r := gin.New()
			r.Use(func(c *gin.Context) { c.Set("request_id", "req-42") })
			r.Use(GinMiddleware(zap.New(core)))
			r.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			logs := recorded.FilterMessage("HTTP Request").All()
			require.Len(t, logs, 1)
			assert.Equal(t, tt.level, logs[0].Level)
			assert.Equal(t, "req-42", logs[0].ContextMap()["request_id"])
		})
	}
}

func TestGinMiddleware_PropagatesLoggerToRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := observer.New(zapcore.InfoLevel)

	var fromCtx *zap.Logger
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/x", func(c *gin.Context) {
		fromCtx = FromContext(c.Request.Context())
		assert.Same(t, GetGinLogger(c), fromCtx)
		c.Status(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotNil(t, fromCtx)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}
