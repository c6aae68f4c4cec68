package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// FreightPayer records who bears the freight of a delivery
type FreightPayer string

const (
	FreightPaidByUs       FreightPayer = "us"
	FreightPaidByCustomer FreightPayer = "customer"
	FreightPaidBySupplier FreightPayer = "supplier"
)

// Delivery is a weigh-ticket event. It is linked to at most one of a sale
// or a purchase and carries no price of its own.
type Delivery struct {
	shared.BaseEntity
	SaleID        *uuid.UUID      `json:"sale_id,omitempty"`
	PurchaseID    *uuid.UUID      `json:"purchase_id,omitempty"`
	CarrierID     *uuid.UUID      `json:"carrier_id,omitempty"`
	NetWeight     decimal.Decimal `json:"net_weight"`
	FreightCost   decimal.Decimal `json:"freight_cost"`
	FreightPaidBy FreightPayer    `json:"freight_paid_by,omitempty"`
	PlateNumber   string          `json:"plate_number,omitempty"`
	TicketNumber  string          `json:"ticket_number,omitempty"`
	SeasonID      *uuid.UUID      `json:"season_id,omitempty"`
	DeliveryDate  time.Time       `json:"delivery_date"`
}

// Validate enforces the sale XOR purchase link and a non-negative weight
func (d Delivery) Validate() error {
	if d.SaleID != nil && d.PurchaseID != nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "delivery cannot reference both a sale and a purchase")
	}
	if d.NetWeight.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "net weight cannot be negative")
	}
	return nil
}

// DeliveryFilter selects deliveries attributed to any of the given ids.
// The result is the set union; a delivery matching several sets appears once.
type DeliveryFilter struct {
	SaleIDs     []uuid.UUID
	PurchaseIDs []uuid.UUID
	DeliveryIDs []uuid.UUID
}

// IsEmpty reports whether the filter can match nothing
func (f DeliveryFilter) IsEmpty() bool {
	return len(f.SaleIDs) == 0 && len(f.PurchaseIDs) == 0 && len(f.DeliveryIDs) == 0
}

// TotalTonnage sums net weights
func TotalTonnage(ds []Delivery) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d.NetWeight)
	}
	return total
}
