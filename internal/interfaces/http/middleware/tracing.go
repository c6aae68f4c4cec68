package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns the otelgin middleware, which names spans
// "METHOD /route/pattern". A disabled tracer yields a pass-through handler.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(serviceName)
}

// SpanAttributes copies request id and user id onto the current span.
// Place it after Auth so the identity is known.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := GetRequestID(c); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
			if id, ok := GetIdentity(c); ok {
				span.SetAttributes(attribute.String("user_id", id.UserID))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the span as failed for 5xx responses. Client
// errors are left unset, they are expected outcomes.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
