package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Warehouse is a storage location
type Warehouse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Movement is a signed quantity delta for one (warehouse, feed type) pair
type Movement struct {
	ID            uuid.UUID       `json:"id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	FeedTypeID    uuid.UUID       `json:"feed_type_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	MovedAt       time.Time       `json:"moved_at"`
}

// StockLevel is derived stock on hand per (warehouse, feed type)
type StockLevel struct {
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	FeedTypeID    uuid.UUID       `json:"feed_type_id"`
	FeedTypeName  string          `json:"feed_type_name"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// SummaryReader yields stock levels from v_inventory_summary or the
// equivalent aggregation over inventory_movements.
type SummaryReader interface {
	// ListStock filters by warehouse when warehouseID is non-nil.
	ListStock(ctx context.Context, warehouseID *uuid.UUID) ([]StockLevel, error)
}
