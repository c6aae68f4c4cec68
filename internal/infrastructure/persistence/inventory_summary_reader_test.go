package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

func TestInventorySummaryReader(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, true)

	depo, ambar := uuid.New(), uuid.New()
	yonca, saman := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&models.WarehouseModel{ID: depo, Name: "Depo"}).Error)
	require.NoError(t, db.Create(&models.WarehouseModel{ID: ambar, Name: "Ambar"}).Error)
	require.NoError(t, db.Create(&models.FeedTypeModel{ID: yonca, Name: "Yonca"}).Error)
	require.NoError(t, db.Create(&models.FeedTypeModel{ID: saman, Name: "Saman"}).Error)

	move := func(w, f uuid.UUID, qty int64) {
		require.NoError(t, db.Create(&models.InventoryMovementModel{
			ID:          uuid.New(),
			WarehouseID: w,
			FeedTypeID:  f,
			Quantity:    decimal.NewFromInt(qty),
			MovedAt:     time.Now(),
		}).Error)
	}
	move(depo, yonca, 100)
	move(depo, yonca, -30)
	move(depo, saman, 40)
	move(ambar, yonca, 15)

	for name, caps := range map[string]ViewCapabilities{"view": AllViews(), "aggregation": {}} {
		t.Run(name, func(t *testing.T) {
			reader := NewInventorySummaryReader(db, testPolicy(), caps)

			all, err := reader.ListStock(ctx, nil)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "Ambar", all[0].WarehouseName)

			inDepo, err := reader.ListStock(ctx, &depo)
			require.NoError(t, err)
			require.Len(t, inDepo, 2)
			assert.Equal(t, "Saman", inDepo[0].FeedTypeName)
			decEq(t, "40", inDepo[0].Quantity)
			assert.Equal(t, "Yonca", inDepo[1].FeedTypeName)
			decEq(t, "70", inDepo[1].Quantity)
		})
	}
}
