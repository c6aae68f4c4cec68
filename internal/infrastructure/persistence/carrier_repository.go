package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// carrierBalanceAggregation is the base-table equivalent of v_carrier_balance
const carrierBalanceAggregation = `
SELECT cr.id AS carrier_id,
       cr.name AS carrier_name,
       COALESCE(SUM(CASE WHEN ct.type = 'freight_charge' THEN ct.amount ELSE 0 END), 0) AS total_freight,
       COALESCE(SUM(CASE WHEN ct.type = 'payment' THEN ct.amount ELSE 0 END), 0) AS total_paid,
       COALESCE(SUM(CASE WHEN ct.type = 'freight_charge' THEN ct.amount
                         WHEN ct.type = 'payment' THEN -ct.amount
                         ELSE 0 END), 0) AS balance
FROM carriers cr
LEFT JOIN carrier_transactions ct ON ct.carrier_id = cr.id AND ct.deleted_at IS NULL
GROUP BY cr.id, cr.name`

// GormCarrierRepository implements carrier.Repository and
// carrier.TransactionRepository using GORM
type GormCarrierRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormCarrierRepository creates a new GormCarrierRepository
func NewGormCarrierRepository(db *gorm.DB, policy QueryPolicy) *GormCarrierRepository {
	return &GormCarrierRepository{db: db, policy: policy}
}

// FindByIDs returns the carriers among ids that exist
func (r *GormCarrierRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]carrier.Carrier, error) {
	if len(ids) == 0 {
		return []carrier.Carrier{}, nil
	}
	var ms []models.CarrierModel
	err := r.policy.Read(ctx, "find carriers", func(ctx context.Context) error {
		ms = nil
		return r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]carrier.Carrier, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, nil
}

// ListBySeason returns the carrier ledger entries of a season with the given type
func (r *GormCarrierRepository) ListBySeason(ctx context.Context, seasonID uuid.UUID, typ carrier.TransactionType) ([]carrier.Transaction, error) {
	var ms []models.CarrierTransactionModel
	err := r.policy.Read(ctx, "list carrier transactions", func(ctx context.Context) error {
		ms = nil
		return r.db.WithContext(ctx).
			Where("season_id = ? AND type = ?", seasonID, string(typ)).
			Order("transaction_date ASC").
			Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]carrier.Transaction, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, nil
}

// NewCarrierBalanceReader selects the view-backed reader when the view is
// present and the aggregation otherwise.
func NewCarrierBalanceReader(db *gorm.DB, policy QueryPolicy, caps ViewCapabilities) carrier.BalanceReader {
	source := "(" + carrierBalanceAggregation + ") AS b"
	if caps.CarrierBalance {
		source = ViewCarrierBalance
	}
	return &CarrierBalanceReader{db: db, policy: policy, source: source}
}

// CarrierBalanceReader reads carrier balances from a view or derived table
type CarrierBalanceReader struct {
	db     *gorm.DB
	policy QueryPolicy
	source string
}

// ListBalances returns the balance of every carrier ordered by name
func (r *CarrierBalanceReader) ListBalances(ctx context.Context) ([]carrier.Balance, error) {
	var rows []models.CarrierBalanceRow
	err := r.policy.Read(ctx, "list carrier balances", func(ctx context.Context) error {
		rows = nil
		return r.db.WithContext(ctx).Table(r.source).Order("carrier_name ASC").Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]carrier.Balance, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

var (
	_ carrier.Repository            = (*GormCarrierRepository)(nil)
	_ carrier.TransactionRepository = (*GormCarrierRepository)(nil)
	_ carrier.BalanceReader         = (*CarrierBalanceReader)(nil)
)
