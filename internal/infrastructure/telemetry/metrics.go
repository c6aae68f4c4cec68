package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
	enabled  bool
}

// NewMeterProvider creates the global meter provider exporting over OTLP gRPC.
// When telemetry is disabled meters come from the global no-op provider.
func NewMeterProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		return mp, nil
	}

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}

	exporterOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	mp.enabled = true
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// Shutdown flushes pending metrics and stops the reader.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		mp.logger.Error("Error shutting down meter provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// Meter returns a named meter from the provider.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// IsEnabled returns whether metrics are exported.
func (mp *MeterProvider) IsEnabled() bool {
	return mp.enabled
}

// Counter is a monotonically increasing int64 instrument.
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a counter on meter.
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Add increments the counter by value.
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by one.
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// Histogram records a distribution of float64 values.
type Histogram struct {
	histogram metric.Float64Histogram
}

// HistogramOpts configures a histogram.
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

// DurationBuckets are bucket boundaries in seconds for request and query latencies
var DurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// NewHistogram creates a histogram on meter.
func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	options := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(opts.Boundaries) > 0 {
		options = append(options, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	h, err := meter.Float64Histogram(opts.Name, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", opts.Name, err)
	}
	return &Histogram{histogram: h}, nil
}

// Record records value.
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// RecordDuration records d in seconds.
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

// Gauge records the latest int64 value.
type Gauge struct {
	gauge metric.Int64Gauge
}

// NewGauge creates a gauge on meter.
func NewGauge(meter metric.Meter, name, description, unit string) (*Gauge, error) {
	g, err := meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge %s: %w", name, err)
	}
	return &Gauge{gauge: g}, nil
}

// Record sets the gauge to value.
func (g *Gauge) Record(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	g.gauge.Record(ctx, value, metric.WithAttributes(attrs...))
}
