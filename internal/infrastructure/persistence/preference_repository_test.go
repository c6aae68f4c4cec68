package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/preference"
)

func TestGormPreferenceStore(t *testing.T) {
	ctx := context.Background()
	store := NewGormPreferenceStore(setupTestDB(t, false), testPolicy())

	t.Run("missing key", func(t *testing.T) {
		_, found, err := store.Get(ctx, "u1", preference.KeyBalanceVisible)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "u1", preference.KeyBalanceVisible, "true"))
		require.NoError(t, store.Set(ctx, "u1", preference.KeyBalanceVisible, "false"))

		v, found, err := store.Get(ctx, "u1", preference.KeyBalanceVisible)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "false", v)
	})

	t.Run("list by prefix is scoped per user", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "u1", preference.ShipmentTemplatePrefix+"Kaya", "{}"))
		require.NoError(t, store.Set(ctx, "u1", preference.ShipmentTemplatePrefix+"Demir", "{}"))
		require.NoError(t, store.Set(ctx, "u1", "shipmentXtemplate:fake", "{}"))
		require.NoError(t, store.Set(ctx, "u2", preference.ShipmentTemplatePrefix+"Other", "{}"))

		got, err := store.List(ctx, "u1", preference.ShipmentTemplatePrefix)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Contains(t, got, preference.ShipmentTemplatePrefix+"Kaya")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "u1", preference.KeyBalanceVisible))
		require.NoError(t, store.Delete(ctx, "u1", "never-set"))

		_, found, err := store.Get(ctx, "u1", preference.KeyBalanceVisible)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
