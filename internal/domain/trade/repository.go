package trade

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository reads sales. Soft-deleted rows are excluded.
type SaleRepository interface {
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]Sale, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Sale, error)
}

// PurchaseRepository reads purchases. Soft-deleted rows are excluded.
type PurchaseRepository interface {
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]Purchase, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Purchase, error)
}

// DeliveryRepository reads deliveries. Soft-deleted rows are excluded.
type DeliveryRepository interface {
	FindAttributed(ctx context.Context, filter DeliveryFilter) ([]Delivery, error)
	ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]Delivery, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// FeedTypeRepository reads feed types
type FeedTypeRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]FeedType, error)
}
