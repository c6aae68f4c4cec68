package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// GormContactRepository implements ledger.ContactRepository using GORM
type GormContactRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB, policy QueryPolicy) *GormContactRepository {
	return &GormContactRepository{db: db, policy: policy}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Contact, error) {
	var m models.ContactModel
	err := r.policy.Read(ctx, "find contact", func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, mapNotFound(err, "contact")
	}
	return m.ToDomain(), nil
}

// FindByIDs returns the contacts among ids that exist. Unknown ids are skipped.
func (r *GormContactRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Contact, error) {
	if len(ids) == 0 {
		return []ledger.Contact{}, nil
	}
	var ms []models.ContactModel
	err := r.policy.Read(ctx, "find contacts", func(ctx context.Context) error {
		ms = nil
		return r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	contacts := make([]ledger.Contact, len(ms))
	for i := range ms {
		contacts[i] = *ms[i].ToDomain()
	}
	return contacts, nil
}

// Create inserts a new contact
func (r *GormContactRepository) Create(ctx context.Context, c *ledger.Contact) error {
	return r.db.WithContext(ctx).Create(models.ContactModelFromDomain(c)).Error
}

var _ ledger.ContactRepository = (*GormContactRepository)(nil)
