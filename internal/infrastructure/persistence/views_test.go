package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectViews(t *testing.T) {
	undefined := &pgconn.PgError{Code: "42P01", Message: `relation "v_carrier_balance" does not exist`}

	t.Run("all views present", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		for _, v := range []string{ViewAccountSummary, ViewCarrierBalance, ViewInventorySummary} {
			mock.ExpectQuery(`SELECT 1 FROM ` + v + ` LIMIT 1`).
				WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
		}

		caps, err := DetectViews(context.Background(), db.DB)
		require.NoError(t, err)
		assert.Equal(t, AllViews(), caps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing relation marks view absent", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT 1 FROM v_account_summary`).
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
		mock.ExpectQuery(`SELECT 1 FROM v_carrier_balance`).
			WillReturnError(undefined)
		mock.ExpectQuery(`SELECT 1 FROM v_inventory_summary`).
			WillReturnError(errors.New(`pq: relation "v_inventory_summary" does not exist`))

		caps, err := DetectViews(context.Background(), db.DB)
		require.NoError(t, err)
		assert.True(t, caps.AccountSummary)
		assert.False(t, caps.CarrierBalance)
		assert.False(t, caps.InventorySummary)
	})

	t.Run("other failures abort", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT 1 FROM v_account_summary`).
			WillReturnError(&pgconn.PgError{Code: "42501", Message: "permission denied for view v_account_summary"})

		_, err := DetectViews(context.Background(), db.DB)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "check v_account_summary")
	})
}

func TestIsUndefinedRelation(t *testing.T) {
	assert.True(t, isUndefinedRelation(&pgconn.PgError{Code: "42P01"}))
	assert.True(t, isUndefinedRelation(errors.New("no such table: v_account_summary")))
	assert.False(t, isUndefinedRelation(&pgconn.PgError{Code: "42501"}))
	assert.False(t, isUndefinedRelation(errors.New("connection refused")))
}
