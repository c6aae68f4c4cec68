package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/inventory"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// stockAggregation is the base-table equivalent of v_inventory_summary
const stockAggregation = `
SELECT w.id AS warehouse_id,
       w.name AS warehouse_name,
       f.id AS feed_type_id,
       f.name AS feed_type_name,
       SUM(m.quantity) AS quantity
FROM inventory_movements m
JOIN warehouses w ON w.id = m.warehouse_id
JOIN feed_types f ON f.id = m.feed_type_id
GROUP BY w.id, w.name, f.id, f.name`

// InventorySummaryReader reads stock levels from a view or derived table
type InventorySummaryReader struct {
	db     *gorm.DB
	policy QueryPolicy
	source string
}

// NewInventorySummaryReader selects v_inventory_summary when present and the
// movement aggregation otherwise.
func NewInventorySummaryReader(db *gorm.DB, policy QueryPolicy, caps ViewCapabilities) *InventorySummaryReader {
	source := "(" + stockAggregation + ") AS s"
	if caps.InventorySummary {
		source = ViewInventorySummary
	}
	return &InventorySummaryReader{db: db, policy: policy, source: source}
}

// ListStock returns stock on hand per warehouse and feed type
func (r *InventorySummaryReader) ListStock(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockLevel, error) {
	var rows []models.StockLevelRow
	err := r.policy.Read(ctx, "list stock", func(ctx context.Context) error {
		rows = nil
		q := r.db.WithContext(ctx).Table(r.source)
		if warehouseID != nil {
			q = q.Where("warehouse_id = ?", *warehouseID)
		}
		return q.Order("warehouse_name ASC, feed_type_name ASC").Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]inventory.StockLevel, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

var _ inventory.SummaryReader = (*InventorySummaryReader)(nil)
