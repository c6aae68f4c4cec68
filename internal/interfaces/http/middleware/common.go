// Package middleware provides the gin middleware of the feed ledger API.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

const (
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request id in both directions
	RequestIDHeader = "X-Request-ID"
	// MaxRequestIDLength bounds client-supplied request ids
	MaxRequestIDLength = 128
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// CORSConfigFrom builds the CORS settings from the HTTP configuration.
// An empty origin list rejects every cross-origin request.
func CORSConfigFrom(cfg config.HTTPConfig) CORSConfig {
	return CORSConfig{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     cfg.CORSAllowMethods,
		AllowHeaders:     cfg.CORSAllowHeaders,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSWithConfig returns a CORS middleware with custom configuration
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := slices.Contains(cfg.AllowOrigins, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowed := origin != "" && (allowWildcard || slices.Contains(cfg.AllowOrigins, origin))

		if allowed {
			if allowWildcard {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Add("Vary", "Origin")
				if cfg.AllowCredentials {
					c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}
			if len(cfg.ExposeHeaders) > 0 {
				c.Writer.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
			}
		}

		// Preflight always ends here, with CORS headers only for allowed origins
		if c.Request.Method == http.MethodOptions {
			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
				c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
				c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID adds a request id to the context and the response headers,
// reusing the client's X-Request-ID when it is reasonably sized.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > MaxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
