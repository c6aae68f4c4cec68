package carrier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Carrier is a third-party freight provider with its own cost ledger
type Carrier struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
}

// TransactionType classifies carrier ledger entries
type TransactionType string

const (
	FreightCharge TransactionType = "freight_charge"
	Payment       TransactionType = "payment"
)

// Transaction is one entry of a carrier's cost ledger
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	CarrierID       uuid.UUID       `json:"carrier_id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	SeasonID        *uuid.UUID      `json:"season_id,omitempty"`
	DeliveryID      *uuid.UUID      `json:"delivery_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// Balance is what the business owes a carrier: freight charged minus payments.
type Balance struct {
	CarrierID    uuid.UUID       `json:"carrier_id"`
	CarrierName  string          `json:"carrier_name"`
	TotalFreight decimal.Decimal `json:"total_freight"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Balance      decimal.Decimal `json:"balance"`
}

// Repository reads carriers
type Repository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Carrier, error)
}

// TransactionRepository reads carrier ledger entries. Soft-deleted rows are excluded.
type TransactionRepository interface {
	ListBySeason(ctx context.Context, seasonID uuid.UUID, typ TransactionType) ([]Transaction, error)
}

// BalanceReader yields carrier balances from v_carrier_balance or the
// equivalent aggregation over carrier_transactions.
type BalanceReader interface {
	ListBalances(ctx context.Context) ([]Balance, error)
}
