package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

func seedSale(t *testing.T, db *gorm.DB, contactID uuid.UUID, qty, price string) trade.Sale {
	t.Helper()
	s := trade.Sale{Document: trade.Document{
		BaseEntity: shared.NewBaseEntity(),
		ContactID:  contactID,
		Quantity:   decimal.RequireFromString(qty),
		UnitPrice:  decimal.RequireFromString(price),
		Status:     trade.StatusPending,
	}}
	require.NoError(t, NewGormSaleRepository(db, testPolicy()).Create(context.Background(), &s))
	return s
}

func seedPurchase(t *testing.T, db *gorm.DB, contactID uuid.UUID, qty, price string) trade.Purchase {
	t.Helper()
	p := trade.Purchase{Document: trade.Document{
		BaseEntity: shared.NewBaseEntity(),
		ContactID:  contactID,
		Quantity:   decimal.RequireFromString(qty),
		UnitPrice:  decimal.RequireFromString(price),
		Status:     trade.StatusPending,
	}}
	require.NoError(t, NewGormPurchaseRepository(db, testPolicy()).Create(context.Background(), &p))
	return p
}

func seedDelivery(t *testing.T, db *gorm.DB, saleID, purchaseID *uuid.UUID, weight string, date time.Time) trade.Delivery {
	t.Helper()
	d := trade.Delivery{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       saleID,
		PurchaseID:   purchaseID,
		NetWeight:    decimal.RequireFromString(weight),
		DeliveryDate: date,
	}
	require.NoError(t, NewGormDeliveryRepository(db, testPolicy()).Create(context.Background(), &d))
	return d
}

func TestGormSaleRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, false)
	repo := NewGormSaleRepository(db, testPolicy())
	contactID := uuid.New()

	s1 := seedSale(t, db, contactID, "10", "4.5")
	seedSale(t, db, uuid.New(), "3", "2")

	t.Run("lists by contact with generated total", func(t *testing.T) {
		sales, err := repo.ListByContact(ctx, contactID)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, s1.ID, sales[0].ID)
		decEq(t, "45", sales[0].TotalAmount)
	})

	t.Run("find by ids skips unknown ids", func(t *testing.T) {
		sales, err := repo.FindByIDs(ctx, []uuid.UUID{s1.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, sales, 1)

		none, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestGormPurchaseRepository(t *testing.T) {
	db := setupTestDB(t, false)
	repo := NewGormPurchaseRepository(db, testPolicy())
	contactID := uuid.New()
	p := seedPurchase(t, db, contactID, "20", "3.25")

	purchases, err := repo.ListByContact(context.Background(), contactID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, p.ID, purchases[0].ID)
	decEq(t, "3.25", purchases[0].UnitPrice)
}

func TestGormDeliveryRepository_FindAttributed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, false)
	repo := NewGormDeliveryRepository(db, testPolicy())
	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	saleID, purchaseID, otherSale := uuid.New(), uuid.New(), uuid.New()
	bySale := seedDelivery(t, db, &saleID, nil, "12.5", day)
	byPurchase := seedDelivery(t, db, nil, &purchaseID, "8", day.AddDate(0, 0, 1))
	unrelated := seedDelivery(t, db, &otherSale, nil, "3", day.AddDate(0, 0, 2))
	removed := seedDelivery(t, db, &saleID, nil, "1", day.AddDate(0, 0, 3))
	require.NoError(t, db.Delete(&models.DeliveryModel{}, "id = ?", removed.ID).Error)

	t.Run("empty filter returns empty without error", func(t *testing.T) {
		ds, err := repo.FindAttributed(ctx, trade.DeliveryFilter{})
		require.NoError(t, err)
		assert.NotNil(t, ds)
		assert.Empty(t, ds)
	})

	t.Run("union of sale and purchase ids newest first", func(t *testing.T) {
		ds, err := repo.FindAttributed(ctx, trade.DeliveryFilter{
			SaleIDs:     []uuid.UUID{saleID},
			PurchaseIDs: []uuid.UUID{purchaseID},
		})
		require.NoError(t, err)
		require.Len(t, ds, 2)
		assert.Equal(t, byPurchase.ID, ds[0].ID)
		assert.Equal(t, bySale.ID, ds[1].ID)
	})

	t.Run("delivery ids only", func(t *testing.T) {
		ds, err := repo.FindAttributed(ctx, trade.DeliveryFilter{DeliveryIDs: []uuid.UUID{unrelated.ID, removed.ID}})
		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, unrelated.ID, ds[0].ID)
	})

	t.Run("exists ignores soft-deleted rows", func(t *testing.T) {
		ok, err := repo.Exists(ctx, bySale.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, removed.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGormDeliveryRepository_ListBySeason(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, false)
	repo := NewGormDeliveryRepository(db, testPolicy())
	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	seasonID, otherSeason := uuid.New(), uuid.New()

	inSeason := func(id, season uuid.UUID) {
		require.NoError(t, db.Model(&models.DeliveryModel{}).Where("id = ?", id).Update("season_id", season).Error)
	}
	saleID := uuid.New()
	late := seedDelivery(t, db, &saleID, nil, "4", day.AddDate(0, 0, 2))
	early := seedDelivery(t, db, &saleID, nil, "6", day)
	removed := seedDelivery(t, db, &saleID, nil, "2", day.AddDate(0, 0, 1))
	elsewhere := seedDelivery(t, db, &saleID, nil, "9", day)
	seedDelivery(t, db, &saleID, nil, "1", day)
	for _, d := range []trade.Delivery{late, early, removed} {
		inSeason(d.ID, seasonID)
	}
	inSeason(elsewhere.ID, otherSeason)
	require.NoError(t, db.Delete(&models.DeliveryModel{}, "id = ?", removed.ID).Error)

	ds, err := repo.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, early.ID, ds[0].ID)
	assert.Equal(t, late.ID, ds[1].ID)
	require.NotNil(t, ds[0].SeasonID)
	assert.Equal(t, seasonID, *ds[0].SeasonID)

	none, err := repo.ListBySeason(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormDeliveryRepository_Create(t *testing.T) {
	db := setupTestDB(t, false)
	repo := NewGormDeliveryRepository(db, testPolicy())
	saleID, purchaseID := uuid.New(), uuid.New()

	err := repo.Create(context.Background(), &trade.Delivery{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       &saleID,
		PurchaseID:   &purchaseID,
		NetWeight:    decimal.NewFromInt(1),
		DeliveryDate: time.Now(),
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestGormFeedTypeRepository(t *testing.T) {
	db := setupTestDB(t, false)
	id := uuid.New()
	require.NoError(t, db.Create(&models.FeedTypeModel{ID: id, Name: "Yonca"}).Error)

	fts, err := NewGormFeedTypeRepository(db, testPolicy()).FindByIDs(context.Background(), []uuid.UUID{id})
	require.NoError(t, err)
	require.Len(t, fts, 1)
	assert.Equal(t, "Yonca", fts[0].Name)
}
