package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// TransactionType is the side of an account movement
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// IsValid reports whether t is debit or credit
func (t TransactionType) IsValid() bool {
	return t == TransactionDebit || t == TransactionCredit
}

// ReferenceType names the commercial document an account transaction points at
type ReferenceType string

const (
	ReferenceNone     ReferenceType = ""
	ReferenceSale     ReferenceType = "sale"
	ReferencePurchase ReferenceType = "purchase"
	ReferenceDelivery ReferenceType = "delivery"
	ReferencePayment  ReferenceType = "payment"
	ReferenceManual   ReferenceType = "manual"
)

// IsValid reports whether r is empty or a known reference type
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceNone, ReferenceSale, ReferencePurchase, ReferenceDelivery, ReferencePayment, ReferenceManual:
		return true
	}
	return false
}

// Account is the per-contact running balance. Balance, TotalDebit and
// TotalCredit are denormalized totals maintained on every posting.
type Account struct {
	shared.BaseEntity
	ContactID   uuid.UUID       `json:"contact_id"`
	Balance     decimal.Decimal `json:"balance"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// NewAccount opens an empty account for a contact
func NewAccount(contactID uuid.UUID) *Account {
	return &Account{
		BaseEntity:  shared.NewBaseEntity(),
		ContactID:   contactID,
		Balance:     decimal.Zero,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
}

// Apply books tx against the account totals and stamps tx.BalanceAfter.
func (a *Account) Apply(tx *AccountTransaction) {
	switch tx.Type {
	case TransactionDebit:
		a.TotalDebit = a.TotalDebit.Add(tx.Amount)
	case TransactionCredit:
		a.TotalCredit = a.TotalCredit.Add(tx.Amount)
	}
	a.Balance = a.TotalDebit.Sub(a.TotalCredit)
	a.UpdatedAt = time.Now()
	tx.AccountID = a.ID
	tx.BalanceAfter = a.Balance
}

// AccountTransaction is one append-mostly movement on an account
type AccountTransaction struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Description     string          `json:"description,omitempty"`
	ReferenceType   ReferenceType   `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	SeasonID        *uuid.UUID      `json:"season_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Signed returns the amount with debit positive and credit negative
func (t AccountTransaction) Signed() decimal.Decimal {
	if t.Type == TransactionCredit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NewTransactionInput carries the caller-supplied fields of a posting
type NewTransactionInput struct {
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	ReferenceType   ReferenceType
	ReferenceID     *uuid.UUID
	SeasonID        *uuid.UUID
	TransactionDate time.Time
}

// NewTransaction validates input and builds an unposted transaction
func NewTransaction(in NewTransactionInput) (*AccountTransaction, error) {
	if !in.Type.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "transaction type must be debit or credit")
	}
	if !in.Amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "transaction amount must be positive")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "transaction amount allows at most two decimals")
	}
	if !in.ReferenceType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "unknown reference type")
	}
	if in.ReferenceID != nil && in.ReferenceType == ReferenceNone {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "reference_id requires reference_type")
	}
	now := time.Now()
	date := in.TransactionDate
	if date.IsZero() {
		date = now
	}
	return &AccountTransaction{
		ID:              uuid.New(),
		Type:            in.Type,
		Amount:          in.Amount,
		Description:     in.Description,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
		SeasonID:        in.SeasonID,
		TransactionDate: date,
		CreatedAt:       now,
	}, nil
}
