package ledger

import (
	"context"

	"github.com/google/uuid"
)

// ContactRepository reads contacts
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Contact, error)
	Create(ctx context.Context, c *Contact) error
}

// SummaryReader yields per-contact balance summaries. Two strategies exist:
// one backed by the v_account_summary view, one joining base tables.
type SummaryReader interface {
	// SummaryForContact returns NOT_FOUND for an unknown contact and a
	// summary without AccountID for a contact that has no account.
	SummaryForContact(ctx context.Context, contactID uuid.UUID) (*AccountSummary, error)
	ListSummaries(ctx context.Context, filter SummaryFilter) ([]AccountSummary, error)
}

// AccountRepository reads accounts
type AccountRepository interface {
	FindByContactID(ctx context.Context, contactID uuid.UUID) (*Account, error)
	FindAll(ctx context.Context) ([]Account, error)
}

// TransactionRepository reads account transactions. Soft-deleted rows are never returned.
type TransactionRepository interface {
	// ListByAccount returns the account history newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]AccountTransaction, error)
	// ListByAccountAndReference returns matching rows oldest first.
	ListByAccountAndReference(ctx context.Context, accountID uuid.UUID, ref ReferenceType) ([]AccountTransaction, error)
	ListBySeason(ctx context.Context, seasonID uuid.UUID, ref ReferenceType, typ TransactionType) ([]AccountTransaction, error)
}

// Poster appends a transaction to a contact's account and updates the
// running totals atomically, opening the account on first use.
type Poster interface {
	Post(ctx context.Context, contactID uuid.UUID, tx *AccountTransaction) (*Account, error)
}
