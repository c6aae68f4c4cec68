// Package telemetry provides OpenTelemetry tracing, metrics and log export
// plus optional Pyroscope profiling.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

const shutdownTimeout = 10 * time.Second

// TracerProvider wraps the OpenTelemetry TracerProvider with lifecycle management.
type TracerProvider struct {
	provider            *sdktrace.TracerProvider
	logger              *zap.Logger
	config              config.TelemetryConfig
	mu                  sync.RWMutex
	spanProfilesEnabled bool
}

// NewTracerProvider creates the global tracer provider.
// When telemetry is disabled the global no-op provider stays in place.
func NewTracerProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*TracerProvider, error) {
	tp := &TracerProvider{
		logger: logger,
		config: cfg,
	}

	if !cfg.Enabled {
		logger.Info("Telemetry disabled, using no-op tracer provider")
		return tp, nil
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	tp.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRatio)),
	)

	otel.SetTracerProvider(tp.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry TracerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.String("service_name", cfg.ServiceName),
	)

	return tp, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// newSampler maps a ratio to a parent-based sampler so that spans started
// by an upstream caller keep its decision.
func newSampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// EnableSpanProfiles wraps the provider so that CPU profiles carry the span id.
// The Pyroscope profiler must already be running.
func (tp *TracerProvider) EnableSpanProfiles() {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if tp.provider == nil || tp.spanProfilesEnabled {
		return
	}

	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp.provider))
	tp.spanProfilesEnabled = true
	tp.logger.Info("Span profiles integration enabled", zap.String("service_name", tp.config.ServiceName))
}

// Shutdown flushes pending spans and stops the exporter.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := tp.provider.Shutdown(shutdownCtx); err != nil {
		tp.logger.Error("Error shutting down tracer provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	tp.logger.Info("OpenTelemetry TracerProvider shutdown complete")
	return nil
}

// Tracer returns a named tracer from the provider.
func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.provider == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.provider.Tracer(name, opts...)
}

// IsEnabled returns whether telemetry is enabled.
func (tp *TracerProvider) IsEnabled() bool {
	return tp.config.Enabled && tp.provider != nil
}

// ForceFlush exports all spans that have not yet been exported.
func (tp *TracerProvider) ForceFlush(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	return tp.provider.ForceFlush(ctx)
}
