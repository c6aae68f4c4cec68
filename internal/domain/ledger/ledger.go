package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountSummary is one row of the per-contact balance summary, produced
// either by the v_account_summary view or by the equivalent base-table join.
type AccountSummary struct {
	ContactID   uuid.UUID       `json:"contact_id"`
	ContactName string          `json:"contact_name"`
	ContactType ContactType     `json:"contact_type"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// ContactLedger is the ledger view of a single contact. A contact without
// an account has HasAccount=false and zero totals; that is "no ledger yet",
// not an error.
type ContactLedger struct {
	AccountSummary
	HasAccount   bool                 `json:"has_account"`
	Transactions []AccountTransaction `json:"transactions"`
}

// NewContactLedger assembles a ledger from its summary and newest-first history
func NewContactLedger(summary AccountSummary, txs []AccountTransaction) *ContactLedger {
	if txs == nil {
		txs = []AccountTransaction{}
	}
	return &ContactLedger{
		AccountSummary: summary,
		HasAccount:     summary.AccountID != nil,
		Transactions:   txs,
	}
}

// SummaryFilter narrows ListSummaries
type SummaryFilter struct {
	ContactType ContactType
	// NonZeroOnly drops contacts whose balance is zero
	NonZeroOnly bool
}
