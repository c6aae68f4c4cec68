package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// DocumentStatus is the lifecycle state of a sale or purchase
type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusConfirmed DocumentStatus = "confirmed"
	StatusDelivered DocumentStatus = "delivered"
	StatusCancelled DocumentStatus = "cancelled"
)

// Document holds the fields shared by sales and purchases. TotalAmount is
// computed by the database as quantity * unit_price and is read-only here.
type Document struct {
	shared.BaseEntity
	ContactID   uuid.UUID       `json:"contact_id"`
	FeedTypeID  *uuid.UUID      `json:"feed_type_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      DocumentStatus  `json:"status"`
	SeasonID    *uuid.UUID      `json:"season_id,omitempty"`
}

// Sale is a commercial document selling feed to a customer
type Sale struct {
	Document
}

// Purchase is a commercial document buying feed from a supplier
type Purchase struct {
	Document
}

// FeedType is a product category, e.g. "Arpa" or "Saman"
type FeedType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SalePrices maps sale ids to unit prices
func SalePrices(sales []Sale) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(sales))
	for _, s := range sales {
		out[s.ID] = s.UnitPrice
	}
	return out
}

// PurchasePrices maps purchase ids to unit prices
func PurchasePrices(purchases []Purchase) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(purchases))
	for _, p := range purchases {
		out[p.ID] = p.UnitPrice
	}
	return out
}
