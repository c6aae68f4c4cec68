package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/inventory"
)

// WarehouseModel is the persistence model for warehouses
type WarehouseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string { return "warehouses" }

// InventoryMovementModel is the persistence model for inventory_movements
type InventoryMovementModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	FeedTypeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	ReferenceType string          `gorm:"type:varchar(16)"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid"`
	MovedAt       time.Time       `gorm:"not null"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (InventoryMovementModel) TableName() string { return "inventory_movements" }

// StockLevelRow is one row of v_inventory_summary or its fallback aggregation
type StockLevelRow struct {
	WarehouseID   uuid.UUID
	WarehouseName string
	FeedTypeID    uuid.UUID
	FeedTypeName  string
	Quantity      decimal.Decimal
}

// ToDomain converts to the domain stock level
func (r StockLevelRow) ToDomain() inventory.StockLevel {
	return inventory.StockLevel{
		WarehouseID:   r.WarehouseID,
		WarehouseName: r.WarehouseName,
		FeedTypeID:    r.FeedTypeID,
		FeedTypeName:  r.FeedTypeName,
		Quantity:      r.Quantity,
	}
}
