package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Reporting views created by migrations. Deployments may lack them, so their
// presence is checked once at startup instead of on every request.
const (
	ViewAccountSummary   = "v_account_summary"
	ViewCarrierBalance   = "v_carrier_balance"
	ViewInventorySummary = "v_inventory_summary"
)

// ViewCapabilities records which reporting views the connected database has
type ViewCapabilities struct {
	AccountSummary   bool
	CarrierBalance   bool
	InventorySummary bool
}

// AllViews reports every view as present
func AllViews() ViewCapabilities {
	return ViewCapabilities{AccountSummary: true, CarrierBalance: true, InventorySummary: true}
}

// DetectViews checks each reporting view. A missing relation marks the view
// absent; any other failure is returned so startup can abort.
func DetectViews(ctx context.Context, db *gorm.DB) (ViewCapabilities, error) {
	var caps ViewCapabilities
	checks := []struct {
		view string
		dst  *bool
	}{
		{ViewAccountSummary, &caps.AccountSummary},
		{ViewCarrierBalance, &caps.CarrierBalance},
		{ViewInventorySummary, &caps.InventorySummary},
	}
	for _, p := range checks {
		ok, err := viewExists(ctx, db, p.view)
		if err != nil {
			return ViewCapabilities{}, fmt.Errorf("check %s: %w", p.view, err)
		}
		*p.dst = ok
	}
	return caps, nil
}

func viewExists(ctx context.Context, db *gorm.DB, view string) (bool, error) {
	var one []int
	err := db.WithContext(ctx).Raw("SELECT 1 FROM " + view + " LIMIT 1").Scan(&one).Error
	if err == nil {
		return true, nil
	}
	if isUndefinedRelation(err) {
		return false, nil
	}
	return false, err
}

// isUndefinedRelation matches PostgreSQL's undefined_table error and the
// equivalent driver messages of PostgreSQL and SQLite.
func isUndefinedRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "no such table")
}
