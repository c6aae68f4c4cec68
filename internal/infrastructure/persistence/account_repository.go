package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements ledger.AccountRepository,
// ledger.TransactionRepository and ledger.Poster using GORM
type GormAccountRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB, policy QueryPolicy) *GormAccountRepository {
	return &GormAccountRepository{db: db, policy: policy}
}

// FindByContactID finds the account of a contact
func (r *GormAccountRepository) FindByContactID(ctx context.Context, contactID uuid.UUID) (*ledger.Account, error) {
	var m models.AccountModel
	err := r.policy.Read(ctx, "find account", func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&m, "contact_id = ?", contactID).Error
	})
	if err != nil {
		return nil, mapNotFound(err, "account")
	}
	return m.ToDomain(), nil
}

// FindAll returns every account
func (r *GormAccountRepository) FindAll(ctx context.Context) ([]ledger.Account, error) {
	var ms []models.AccountModel
	err := r.policy.Read(ctx, "list accounts", func(ctx context.Context) error {
		ms = nil
		return r.db.WithContext(ctx).Order("created_at ASC").Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(ms))
	for i := range ms {
		accounts[i] = *ms[i].ToDomain()
	}
	return accounts, nil
}

// ListByAccount returns the account history newest first
func (r *GormAccountRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.AccountTransaction, error) {
	return r.listTransactions(ctx, "list account transactions", "transaction_date DESC, created_at DESC",
		func(db *gorm.DB) *gorm.DB {
			return db.Where("account_id = ?", accountID)
		})
}

// ListByAccountAndReference returns the transactions of an account pointing
// at a given document type, oldest first
func (r *GormAccountRepository) ListByAccountAndReference(ctx context.Context, accountID uuid.UUID, ref ledger.ReferenceType) ([]ledger.AccountTransaction, error) {
	return r.listTransactions(ctx, "list referenced transactions", "transaction_date ASC, created_at ASC",
		func(db *gorm.DB) *gorm.DB {
			return db.Where("account_id = ? AND reference_type = ?", accountID, string(ref))
		})
}

// ListBySeason returns every transaction of a season with the given
// reference type and side
func (r *GormAccountRepository) ListBySeason(ctx context.Context, seasonID uuid.UUID, ref ledger.ReferenceType, typ ledger.TransactionType) ([]ledger.AccountTransaction, error) {
	return r.listTransactions(ctx, "list season transactions", "transaction_date ASC",
		func(db *gorm.DB) *gorm.DB {
			return db.Where("season_id = ? AND reference_type = ? AND type = ?", seasonID, string(ref), string(typ))
		})
}

func (r *GormAccountRepository) listTransactions(ctx context.Context, op, order string, scope func(*gorm.DB) *gorm.DB) ([]ledger.AccountTransaction, error) {
	var ms []models.AccountTransactionModel
	err := r.policy.Read(ctx, op, func(ctx context.Context) error {
		ms = nil
		return scope(r.db.WithContext(ctx)).Order(order).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	txs := make([]ledger.AccountTransaction, len(ms))
	for i := range ms {
		txs[i] = ms[i].ToDomain()
	}
	return txs, nil
}

// Post appends tx to the contact's account inside one database transaction.
// The account row is locked for the duration so concurrent postings see each
// other's totals. The account is opened on first use.
func (r *GormAccountRepository) Post(ctx context.Context, contactID uuid.UUID, tx *ledger.AccountTransaction) (*ledger.Account, error) {
	var account *ledger.Account
	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var contact models.ContactModel
		if err := db.Select("id").First(&contact, "id = ?", contactID).Error; err != nil {
			return mapNotFound(err, "contact")
		}

		m, err := lockOrOpenAccount(db, contactID)
		if err != nil {
			return err
		}

		account = m.ToDomain()
		account.Apply(tx)

		if err := db.Model(&models.AccountModel{}).
			Where("id = ?", account.ID).
			Updates(map[string]any{
				"balance":      account.Balance,
				"total_debit":  account.TotalDebit,
				"total_credit": account.TotalCredit,
				"updated_at":   account.UpdatedAt,
			}).Error; err != nil {
			return fmt.Errorf("update account totals: %w", err)
		}
		if err := db.Create(models.AccountTransactionModelFromDomain(tx)).Error; err != nil {
			return fmt.Errorf("insert account transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func lockOrOpenAccount(db *gorm.DB, contactID uuid.UUID) (*models.AccountModel, error) {
	var m models.AccountModel
	res := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contact_id = ?", contactID).
		Limit(1).
		Find(&m)
	if res.Error != nil {
		return nil, fmt.Errorf("lock account: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &m, nil
	}

	// A concurrent first posting may open the account between the lookup and
	// the insert; the unique contact_id index turns that into a no-op.
	fresh := models.AccountModelFromDomain(ledger.NewAccount(contactID))
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact_id"}},
		DoNothing: true,
	}).Create(fresh).Error; err != nil {
		return nil, fmt.Errorf("open account: %w", err)
	}

	m = models.AccountModel{}
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "contact_id = ?", contactID).Error; err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	return &m, nil
}

var (
	_ ledger.AccountRepository     = (*GormAccountRepository)(nil)
	_ ledger.TransactionRepository = (*GormAccountRepository)(nil)
	_ ledger.Poster                = (*GormAccountRepository)(nil)
)
