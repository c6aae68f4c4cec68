package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence/models"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB, policy QueryPolicy) *GormSaleRepository {
	return &GormSaleRepository{db: db, policy: policy}
}

// ListByContact returns the sales made to a contact
func (r *GormSaleRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]trade.Sale, error) {
	return r.find(ctx, "list sales", func(db *gorm.DB) *gorm.DB {
		return db.Where("contact_id = ?", contactID).Order("created_at ASC")
	})
}

// FindByIDs returns the sales among ids that exist
func (r *GormSaleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Sale, error) {
	if len(ids) == 0 {
		return []trade.Sale{}, nil
	}
	return r.find(ctx, "find sales", func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	})
}

// Create inserts a sale. total_amount is computed by the database.
func (r *GormSaleRepository) Create(ctx context.Context, s *trade.Sale) error {
	return r.db.WithContext(ctx).Create(models.SaleModelFromDomain(s)).Error
}

func (r *GormSaleRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]trade.Sale, error) {
	var ms []models.SaleModel
	err := r.policy.Read(ctx, op, func(ctx context.Context) error {
		ms = nil
		return scope(r.db.WithContext(ctx)).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]trade.Sale, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, nil
}

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB, policy QueryPolicy) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db, policy: policy}
}

// ListByContact returns the purchases made from a contact
func (r *GormPurchaseRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]trade.Purchase, error) {
	return r.find(ctx, "list purchases", func(db *gorm.DB) *gorm.DB {
		return db.Where("contact_id = ?", contactID).Order("created_at ASC")
	})
}

// FindByIDs returns the purchases among ids that exist
func (r *GormPurchaseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Purchase, error) {
	if len(ids) == 0 {
		return []trade.Purchase{}, nil
	}
	return r.find(ctx, "find purchases", func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	})
}

// Create inserts a purchase. total_amount is computed by the database.
func (r *GormPurchaseRepository) Create(ctx context.Context, p *trade.Purchase) error {
	return r.db.WithContext(ctx).Create(models.PurchaseModelFromDomain(p)).Error
}

func (r *GormPurchaseRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]trade.Purchase, error) {
	var ms []models.PurchaseModel
	err := r.policy.Read(ctx, op, func(ctx context.Context) error {
		ms = nil
		return scope(r.db.WithContext(ctx)).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]trade.Purchase, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, nil
}

// GormDeliveryRepository implements trade.DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB, policy QueryPolicy) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db, policy: policy}
}

// FindAttributed returns, newest first, every delivery whose sale id,
// purchase id or own id is in the filter. An empty filter matches nothing
// and issues no query.
func (r *GormDeliveryRepository) FindAttributed(ctx context.Context, filter trade.DeliveryFilter) ([]trade.Delivery, error) {
	if filter.IsEmpty() {
		return []trade.Delivery{}, nil
	}
	return r.find(ctx, "find attributed deliveries", func(db *gorm.DB) *gorm.DB {
		cond := db.Session(&gorm.Session{NewDB: true})
		var match *gorm.DB
		or := func(expr string, ids []uuid.UUID) {
			if len(ids) == 0 {
				return
			}
			if match == nil {
				match = cond.Where(expr, ids)
				return
			}
			match = match.Or(expr, ids)
		}
		or("sale_id IN ?", filter.SaleIDs)
		or("purchase_id IN ?", filter.PurchaseIDs)
		or("id IN ?", filter.DeliveryIDs)
		return db.Where(match).Order("delivery_date DESC, created_at DESC")
	})
}

// ListBySeason returns every delivery of a season
func (r *GormDeliveryRepository) ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]trade.Delivery, error) {
	return r.find(ctx, "list season deliveries", func(db *gorm.DB) *gorm.DB {
		return db.Where("season_id = ?", seasonID).Order("delivery_date ASC")
	})
}

// Exists reports whether a live delivery with id exists
func (r *GormDeliveryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.policy.Read(ctx, "check delivery", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Model(&models.DeliveryModel{}).Where("id = ?", id).Count(&count).Error
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a delivery after validating its attribution
func (r *GormDeliveryRepository) Create(ctx context.Context, d *trade.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(models.DeliveryModelFromDomain(d)).Error
}

func (r *GormDeliveryRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]trade.Delivery, error) {
	var ms []models.DeliveryModel
	err := r.policy.Read(ctx, op, func(ctx context.Context) error {
		ms = nil
		return scope(r.db.WithContext(ctx).Model(&models.DeliveryModel{})).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]trade.Delivery, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, nil
}

// GormFeedTypeRepository implements trade.FeedTypeRepository using GORM
type GormFeedTypeRepository struct {
	db     *gorm.DB
	policy QueryPolicy
}

// NewGormFeedTypeRepository creates a new GormFeedTypeRepository
func NewGormFeedTypeRepository(db *gorm.DB, policy QueryPolicy) *GormFeedTypeRepository {
	return &GormFeedTypeRepository{db: db, policy: policy}
}

// FindByIDs returns the feed types among ids that exist
func (r *GormFeedTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.FeedType, error) {
	if len(ids) == 0 {
		return []trade.FeedType{}, nil
	}
	var ms []models.FeedTypeModel
	err := r.policy.Read(ctx, "find feed types", func(ctx context.Context) error {
		ms = nil
		return r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]trade.FeedType, len(ms))
	for i := range ms {
		out[i] = ms[i].ToDomain()
	}
	return out, nil
}

var (
	_ trade.SaleRepository     = (*GormSaleRepository)(nil)
	_ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
	_ trade.DeliveryRepository = (*GormDeliveryRepository)(nil)
	_ trade.FeedTypeRepository = (*GormFeedTypeRepository)(nil)
)
