package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// accountSummaryJoin is the base-table equivalent of v_account_summary
const accountSummaryJoin = `
SELECT c.id AS contact_id,
       c.name AS contact_name,
       c.type AS contact_type,
       a.id AS account_id,
       COALESCE(a.balance, 0) AS balance,
       COALESCE(a.total_debit, 0) AS total_debit,
       COALESCE(a.total_credit, 0) AS total_credit
FROM contacts c
LEFT JOIN accounts a ON a.contact_id = c.id
WHERE c.deleted_at IS NULL`

// NewAccountSummaryReader selects the view-backed reader when the view is
// present and the join-backed reader otherwise.
func NewAccountSummaryReader(db *gorm.DB, policy QueryPolicy, caps ViewCapabilities) ledger.SummaryReader {
	if caps.AccountSummary {
		return NewViewAccountSummaryReader(db, policy)
	}
	return NewJoinAccountSummaryReader(db, policy)
}

// ViewAccountSummaryReader reads v_account_summary
type ViewAccountSummaryReader struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewViewAccountSummaryReader creates a new ViewAccountSummaryReader
func NewViewAccountSummaryReader(db *gorm.DB, policy QueryPolicy) *ViewAccountSummaryReader {
	return &ViewAccountSummaryReader{db: db, policy: policy}
}

// SummaryForContact reads one row of the view
func (r *ViewAccountSummaryReader) SummaryForContact(ctx context.Context, contactID uuid.UUID) (*ledger.AccountSummary, error) {
	return readOneSummary(ctx, r.policy, func(ctx context.Context, dst *[]models.AccountSummaryRow) error {
		return r.db.WithContext(ctx).
			Raw("SELECT * FROM "+ViewAccountSummary+" WHERE contact_id = ?", contactID).
			Scan(dst).Error
	})
}

// ListSummaries reads the view
func (r *ViewAccountSummaryReader) ListSummaries(ctx context.Context, filter ledger.SummaryFilter) ([]ledger.AccountSummary, error) {
	return readSummaries(ctx, r.policy, func(ctx context.Context, dst *[]models.AccountSummaryRow) error {
		q := r.db.WithContext(ctx).Table(ViewAccountSummary)
		return applySummaryFilter(q, "", filter).Order("contact_name ASC").Scan(dst).Error
	})
}

// JoinAccountSummaryReader derives summaries from contacts and accounts
type JoinAccountSummaryReader struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewJoinAccountSummaryReader creates a new JoinAccountSummaryReader
func NewJoinAccountSummaryReader(db *gorm.DB, policy QueryPolicy) *JoinAccountSummaryReader {
	return &JoinAccountSummaryReader{db: db, policy: policy}
}

// SummaryForContact joins the contact with its account
func (r *JoinAccountSummaryReader) SummaryForContact(ctx context.Context, contactID uuid.UUID) (*ledger.AccountSummary, error) {
	return readOneSummary(ctx, r.policy, func(ctx context.Context, dst *[]models.AccountSummaryRow) error {
		return r.db.WithContext(ctx).
			Raw(accountSummaryJoin+" AND c.id = ?", contactID).
			Scan(dst).Error
	})
}

// ListSummaries joins every contact with its account
func (r *JoinAccountSummaryReader) ListSummaries(ctx context.Context, filter ledger.SummaryFilter) ([]ledger.AccountSummary, error) {
	return readSummaries(ctx, r.policy, func(ctx context.Context, dst *[]models.AccountSummaryRow) error {
		q := r.db.WithContext(ctx).Table("(" + accountSummaryJoin + ") AS s")
		return applySummaryFilter(q, "s.", filter).Order("contact_name ASC").Scan(dst).Error
	})
}

func applySummaryFilter(q *gorm.DB, prefix string, filter ledger.SummaryFilter) *gorm.DB {
	switch filter.ContactType {
	case ledger.ContactTypeCustomer, ledger.ContactTypeSupplier:
		q = q.Where(prefix+"contact_type IN ?", []string{string(filter.ContactType), string(ledger.ContactTypeBoth)})
	case ledger.ContactTypeBoth:
		q = q.Where(prefix+"contact_type = ?", string(ledger.ContactTypeBoth))
	}
	if filter.NonZeroOnly {
		q = q.Where(prefix + "balance <> 0")
	}
	return q
}

func readOneSummary(ctx context.Context, policy QueryPolicy, query func(context.Context, *[]models.AccountSummaryRow) error) (*ledger.AccountSummary, error) {
	var rows []models.AccountSummaryRow
	err := policy.Read(ctx, "read account summary", func(ctx context.Context) error {
		rows = nil
		return query(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError(shared.CodeNotFound, "contact not found")
	}
	s := rows[0].ToDomain()
	return &s, nil
}

func readSummaries(ctx context.Context, policy QueryPolicy, query func(context.Context, *[]models.AccountSummaryRow) error) ([]ledger.AccountSummary, error) {
	var rows []models.AccountSummaryRow
	err := policy.Read(ctx, "list account summaries", func(ctx context.Context) error {
		rows = nil
		return query(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	out := make([]ledger.AccountSummary, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

var (
	_ ledger.SummaryReader = (*ViewAccountSummaryReader)(nil)
	_ ledger.SummaryReader = (*JoinAccountSummaryReader)(nil)
)
