package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
)

func disabledConfig() config.TelemetryConfig {
	return config.TelemetryConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1,
		ServiceName:       "feed-ledger-test",
	}
}

func TestProviders_Disabled(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	tp, err := telemetry.NewTracerProvider(ctx, disabledConfig(), logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NotPanics(t, tp.EnableSpanProfiles)
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := telemetry.NewMeterProvider(ctx, disabledConfig(), logger)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := telemetry.NewLoggerProvider(ctx, disabledConfig(), logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestLoggerProvider_BridgeDisabledReturnsBase(t *testing.T) {
	lp, err := telemetry.NewLoggerProvider(context.Background(), disabledConfig(), zap.NewNop())
	require.NoError(t, err)

	base := zaptest.NewLogger(t)
	assert.Same(t, base, lp.Bridge(base, zapcore.InfoLevel))
}

func TestNewProfiler(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		p, err := telemetry.NewProfiler(config.ProfilingConfig{}, "feed-ledger", zap.NewNop())
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled requires server address", func(t *testing.T) {
		_, err := telemetry.NewProfiler(config.ProfilingConfig{Enabled: true}, "feed-ledger", zap.NewNop())
		assert.Error(t, err)
	})
}
