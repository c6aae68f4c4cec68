package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// LoggerProvider wraps the OpenTelemetry LoggerProvider with lifecycle management.
type LoggerProvider struct {
	provider    *sdklog.LoggerProvider
	logger      *zap.Logger
	serviceName string
}

// NewLoggerProvider creates the global log provider exporting over OTLP gRPC.
func NewLoggerProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{logger: logger, serviceName: cfg.ServiceName}
	if !cfg.Enabled {
		return lp, nil
	}

	exporterOpts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(lp.provider)
	return lp, nil
}

// Shutdown flushes pending records and stops the exporter.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := lp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}
	return nil
}

// IsEnabled returns whether log records are exported.
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.provider != nil
}

// Bridge returns base with its output duplicated to OpenTelemetry for entries
// at or above level. base is returned unchanged when export is disabled.
func (lp *LoggerProvider) Bridge(base *zap.Logger, level zapcore.Level) *zap.Logger {
	if !lp.IsEnabled() {
		return base
	}
	otelCore := &levelFilterCore{
		Core:     otelzap.NewCore(lp.serviceName, otelzap.WithLoggerProvider(lp.provider)),
		minLevel: level,
	}
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, otelCore)
	}))
}

// levelFilterCore drops entries below minLevel; otelzap has no level of its own.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if entry.Level < c.minLevel {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}
