package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

type dbContextKey string

const queryStartKey dbContextKey = "telemetry_query_start"

// dbInstrumentation holds the query instruments registered on a *gorm.DB.
type dbInstrumentation struct {
	queryDuration *Histogram
	slowQueries   *Counter
	slowThreshold time.Duration
	logger        *zap.Logger
}

// InstrumentDB registers query tracing (otelgorm, when DBTraceEnabled) and
// query latency metrics on db, plus observable connection pool gauges.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, meter metric.Meter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQueryThreshold
	}

	if cfg.DBTraceEnabled {
		plugin := otelgorm.NewPlugin(
			otelgorm.WithDBName("postgresql"),
			otelgorm.WithoutQueryVariables(),
		)
		if err := db.Use(plugin); err != nil {
			return fmt.Errorf("register otelgorm: %w", err)
		}
	}

	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DurationBuckets,
	})
	if err != nil {
		return err
	}
	slowQueries, err := NewCounter(meter, "db_slow_query_total", "Queries slower than the configured threshold", "{query}")
	if err != nil {
		return err
	}

	inst := &dbInstrumentation{
		queryDuration: queryDuration,
		slowQueries:   slowQueries,
		slowThreshold: thresh,
		logger:        logger,
	}
	if err := inst.register(db); err != nil {
		return err
	}
	if err := registerPoolGauges(db, meter); err != nil {
		return err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", cfg.DBTraceEnabled),
		zap.Duration("slow_query_threshold", thresh))
	return nil
}

func (i *dbInstrumentation) register(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("telemetry:before_create", i.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("telemetry:after_create", i.after("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("telemetry:before_query", i.before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("telemetry:after_query", i.after("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("telemetry:before_update", i.before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("telemetry:after_update", i.after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", i.before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("telemetry:after_delete", i.after("delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("telemetry:before_row", i.before); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("telemetry:after_row", i.after("row")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", i.before); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("telemetry:after_raw", i.after("raw"))
}

func (i *dbInstrumentation) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

func (i *dbInstrumentation) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(queryStartKey).(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)

		attrs := []attribute.KeyValue{attribute.String("db.operation", operation)}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			attrs = append(attrs, attribute.Bool("error", true))
		}
		i.queryDuration.RecordDuration(ctx, elapsed, attrs...)

		if elapsed <= i.slowThreshold {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		i.slowQueries.Inc(ctx, attribute.String("db.sql.table", table))
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.AddEvent("slow_query", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.String("db.sql.table", table),
			))
		}
		i.logger.Warn("Slow query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("elapsed", elapsed))
	}
}

// registerPoolGauges exposes sql.DBStats as observable gauges read at export time.
func registerPoolGauges(db *gorm.DB, meter metric.Meter) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	maxConns, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge db_pool_connections_max: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(attribute.String("state", "idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(attribute.String("state", "in_use")))
		o.ObserveInt64(conns, int64(stats.OpenConnections), metric.WithAttributes(attribute.String("state", "open")))
		return nil
	}, conns, maxConns)
	if err != nil {
		return fmt.Errorf("register pool gauges: %w", err)
	}
	return nil
}
