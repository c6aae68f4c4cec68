package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

type season struct {
	ID   int
	Name string
}

func TestInstrumentDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&season{}))

	reader, provider := newTestMeter(t)
	cfg := config.TelemetryConfig{DBTraceEnabled: true, DBSlowQueryThresh: time.Nanosecond}
	require.NoError(t, InstrumentDB(db, cfg, provider.Meter("test"), zap.NewNop()))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&season{ID: 1, Name: "2025"}).Error)
	var got []season
	require.NoError(t, db.WithContext(ctx).Find(&got).Error)
	var n int64
	require.NoError(t, db.WithContext(ctx).Raw("SELECT COUNT(*) FROM seasons").Scan(&n).Error)
	assert.Equal(t, int64(1), n)

	metrics := collect(t, reader)

	hist, ok := metrics["db_query_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var total uint64
	for _, dp := range hist.DataPoints {
		total += dp.Count
	}
	assert.GreaterOrEqual(t, total, uint64(3))

	slow, ok := metrics["db_slow_query_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.NotEmpty(t, slow.DataPoints)

	_, ok = metrics["db_pool_connections"]
	assert.True(t, ok)
	_, ok = metrics["db_pool_connections_max"]
	assert.True(t, ok)
}
