package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("writes json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		l.Info("ledger loaded", zap.String("contact_id", "c-1"))
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"ledger loaded"`)
		assert.Contains(t, string(data), `"contact_id":"c-1"`)
	})

	t.Run("extra cores receive entries", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		l, err := New(&Config{Level: "error", Format: "json", Output: "stderr"}, core)
		require.NoError(t, err)

		l.Info("season report built")
		assert.Equal(t, 1, recorded.Len())
	})
}
