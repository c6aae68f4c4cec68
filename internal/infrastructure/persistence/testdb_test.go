package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteSchema mirrors the PostgreSQL migrations closely enough for
// repository tests. total_amount is a generated column in both.
var sqliteSchema = []string{
	`CREATE TABLE contacts (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		address TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
	`CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		contact_id TEXT NOT NULL UNIQUE REFERENCES contacts(id),
		balance NUMERIC NOT NULL DEFAULT 0,
		total_debit NUMERIC NOT NULL DEFAULT 0,
		total_credit NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE account_transactions (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		balance_after NUMERIC NOT NULL,
		description TEXT,
		reference_type TEXT,
		reference_id TEXT,
		season_id TEXT,
		transaction_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
	`CREATE TABLE feed_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE sales (
		id TEXT PRIMARY KEY,
		contact_id TEXT NOT NULL,
		feed_type_id TEXT,
		quantity NUMERIC NOT NULL,
		unit_price NUMERIC NOT NULL,
		total_amount NUMERIC GENERATED ALWAYS AS (quantity * unit_price) STORED,
		status TEXT NOT NULL DEFAULT 'pending',
		season_id TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
	`CREATE TABLE purchases (
		id TEXT PRIMARY KEY,
		contact_id TEXT NOT NULL,
		feed_type_id TEXT,
		quantity NUMERIC NOT NULL,
		unit_price NUMERIC NOT NULL,
		total_amount NUMERIC GENERATED ALWAYS AS (quantity * unit_price) STORED,
		status TEXT NOT NULL DEFAULT 'pending',
		season_id TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
	`CREATE TABLE deliveries (
		id TEXT PRIMARY KEY,
		sale_id TEXT,
		purchase_id TEXT,
		carrier_id TEXT,
		net_weight NUMERIC NOT NULL,
		freight_cost NUMERIC NOT NULL DEFAULT 0,
		freight_paid_by TEXT,
		plate_number TEXT,
		ticket_number TEXT,
		season_id TEXT,
		delivery_date DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		CHECK (sale_id IS NULL OR purchase_id IS NULL)
	)`,
	`CREATE TABLE carriers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE carrier_transactions (
		id TEXT PRIMARY KEY,
		carrier_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		season_id TEXT,
		delivery_id TEXT,
		description TEXT,
		transaction_date DATETIME NOT NULL,
		created_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE seasons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		is_active BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE UNIQUE INDEX ux_seasons_single_active ON seasons(is_active) WHERE is_active`,
	`CREATE TABLE warehouses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE inventory_movements (
		id TEXT PRIMARY KEY,
		warehouse_id TEXT NOT NULL,
		feed_type_id TEXT NOT NULL,
		quantity NUMERIC NOT NULL,
		reference_type TEXT,
		reference_id TEXT,
		moved_at DATETIME NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE user_preferences (
		user_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME,
		PRIMARY KEY (user_id, key)
	)`,
}

var sqliteViews = []string{
	`CREATE VIEW v_account_summary AS` + accountSummaryJoin,
	`CREATE VIEW v_carrier_balance AS` + carrierBalanceAggregation,
	`CREATE VIEW v_inventory_summary AS` + stockAggregation,
}

// setupTestDB opens an in-memory SQLite database with the ledger schema.
// withViews controls whether the reporting views are created.
func setupTestDB(t *testing.T, withViews bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	if withViews {
		for _, stmt := range sqliteViews {
			require.NoError(t, db.Exec(stmt).Error)
		}
	}
	return db
}

func testPolicy() QueryPolicy {
	return QueryPolicy{Timeout: time.Second, MaxRetries: 0}
}
