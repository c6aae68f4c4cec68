package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
)

// httpMetrics holds all HTTP-related metrics instruments.
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}")
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.DurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000},
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a middleware recording request count, latency,
// response size and in-flight requests on meter. Routes are labelled by
// pattern, not by path, to keep cardinality bounded.
func HTTPMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.activeRequests.Add(ctx, 1)

		c.Next()

		m.activeRequests.Add(ctx, -1)
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		}
		m.requestTotal.Inc(ctx, append(attrs, attribute.String("http.status_code", strconv.Itoa(c.Writer.Status())))...)
		m.requestDuration.RecordDuration(ctx, time.Since(start), attrs...)
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.Record(ctx, float64(size), attrs...)
		}
	}, nil
}
