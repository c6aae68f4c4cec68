package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled bool
	// SkipPaths get no profiling labels
	SkipPaths []string
}

// DefaultProfilingConfig returns default profiling middleware configuration
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/health"},
	}
}

// Profiling labels each request's CPU and allocation samples with the
// matched route, its HTTP method and the resource (controller) it serves,
// so Pyroscope can break profiles down per endpoint.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	return map[string]string{
		telemetry.ProfilingLabelMethod:     c.Request.Method,
		telemetry.ProfilingLabelRoute:      route,
		telemetry.ProfilingLabelController: controllerFromRoute(route),
	}
}

// controllerFromRoute returns the first resource segment of a route pattern:
// "/api/v1/contacts/:id/ledger" -> "contacts"
func controllerFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") {
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
