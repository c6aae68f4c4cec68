package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware logs every request once it completes and makes a
// request-scoped logger available to handlers and downstream services.
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetString("request_id")

		reqLogger := base.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Set("logger", reqLogger)

		ctx := WithContext(c.Request.Context(), reqLogger)
		if requestID != "" {
			ctx = WithRequestID(ctx, requestID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("HTTP Request", fields...)
		default:
			reqLogger.Info("HTTP Request", fields...)
		}
	}
}

// Recovery turns panics into 500 responses and logs the stack.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				base.Error("Panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger returns the request-scoped logger set by GinMiddleware.
func GetGinLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
