package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
)

// DeliveryService attributes deliveries to contacts and recovers their prices
type DeliveryService struct {
	contacts   ledger.ContactRepository
	sales      trade.SaleRepository
	purchases  trade.PurchaseRepository
	accounts   ledger.AccountRepository
	txs        ledger.TransactionRepository
	deliveries trade.DeliveryRepository
	cache      shared.QueryCache
	logger     *zap.Logger
	config     ServiceConfig
}

// NewDeliveryService creates a new DeliveryService. cache may be nil.
func NewDeliveryService(
	contacts ledger.ContactRepository,
	sales trade.SaleRepository,
	purchases trade.PurchaseRepository,
	accounts ledger.AccountRepository,
	txs ledger.TransactionRepository,
	deliveries trade.DeliveryRepository,
	cache shared.QueryCache,
	logger *zap.Logger,
	config ServiceConfig,
) *DeliveryService {
	return &DeliveryService{
		contacts:   contacts,
		sales:      sales,
		purchases:  purchases,
		accounts:   accounts,
		txs:        txs,
		deliveries: deliveries,
		cache:      cache,
		logger:     logger,
		config:     config,
	}
}

// DeliveriesForContact returns the deliveries attributable to a contact,
// newest first, each priced from its sale, its purchase or, for contacts
// with no documents at all, from the legacy transaction descriptions.
func (s *DeliveryService) DeliveriesForContact(ctx context.Context, contactID uuid.UUID) ([]trade.PricedDelivery, error) {
	key := shared.CacheKey(shared.CachePrefixContactDeliveries, contactID)
	return shared.Cached(ctx, s.cache, key, s.config.CacheTTL, func(ctx context.Context) ([]trade.PricedDelivery, error) {
		return s.loadDeliveries(ctx, contactID)
	})
}

func (s *DeliveryService) loadDeliveries(ctx context.Context, contactID uuid.UUID) ([]trade.PricedDelivery, error) {
	if _, err := s.contacts.FindByID(ctx, contactID); err != nil {
		return nil, err
	}

	sales, err := s.sales.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	purchases, err := s.purchases.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	book := trade.PriceBook{
		SalePrices:     trade.SalePrices(sales),
		PurchasePrices: trade.PurchasePrices(purchases),
	}
	filter := trade.DeliveryFilter{
		SaleIDs:     mapKeys(book.SalePrices),
		PurchaseIDs: mapKeys(book.PurchasePrices),
	}

	if len(sales) == 0 && len(purchases) == 0 {
		fallback, err := s.fallbackFromTransactions(ctx, contactID)
		if err != nil {
			return nil, err
		}
		if fallback == nil {
			return []trade.PricedDelivery{}, nil
		}
		book.FallbackIDs = fallback.ids
		book.LegacyPrice = fallback.price
		filter.DeliveryIDs = mapKeys(fallback.ids)
	}

	ds, err := s.deliveries.FindAttributed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find deliveries: %w", err)
	}
	return book.Price(ds), nil
}

type transactionFallback struct {
	ids   map[uuid.UUID]struct{}
	price *decimal.Decimal
}

// fallbackFromTransactions reads the purchase-referenced transactions of the
// contact's account. Their reference ids are delivery ids, and the first
// description carrying a "× <price> ₺/kg" note prices all of them.
// It returns nil when the contact has no account.
func (s *DeliveryService) fallbackFromTransactions(ctx context.Context, contactID uuid.UUID) (*transactionFallback, error) {
	acc, err := s.accounts.FindByContactID(ctx, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	txs, err := s.txs.ListByAccountAndReference(ctx, acc.ID, ledger.ReferencePurchase)
	if err != nil {
		return nil, fmt.Errorf("list purchase transactions: %w", err)
	}

	fb := &transactionFallback{ids: make(map[uuid.UUID]struct{})}
	descriptions := make([]string, 0, len(txs))
	for _, tx := range txs {
		if tx.ReferenceID != nil {
			fb.ids[*tx.ReferenceID] = struct{}{}
		}
		descriptions = append(descriptions, tx.Description)
	}
	if price, ok := trade.FirstLegacyUnitPrice(descriptions); ok {
		fb.price = &price
		s.logger.Warn("Pricing deliveries from legacy transaction description",
			zap.String("contact_id", contactID.String()),
			zap.String("unit_price", price.String()),
			zap.Int("deliveries", len(fb.ids)))
	}
	return fb, nil
}

func mapKeys[V any](m map[uuid.UUID]V) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
