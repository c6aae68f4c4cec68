package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mw, err := HTTPMetrics(provider.Meter("http.server"))
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/api/v1/contacts/:id/ledger", func(c *gin.Context) { c.String(http.StatusOK, "ledger") })

	for _, path := range []string{"/api/v1/contacts/a/ledger", "/api/v1/contacts/b/ledger", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	metrics := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			metrics[m.Name] = m
		}
	}

	total, ok := metrics["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byRoute := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		byRoute[route.AsString()] += dp.Value
	}
	assert.Equal(t, int64(2), byRoute["/api/v1/contacts/:id/ledger"])
	assert.Equal(t, int64(1), byRoute["unknown"])

	active, ok := metrics["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value)
	}

	_, ok = metrics["http_server_request_duration_seconds"]
	assert.True(t, ok)
}
