package ledger

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Contact, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]ledger.Contact), args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, c *ledger.Contact) error {
	return m.Called(ctx, c).Error(0)
}

type MockSummaryReader struct {
	mock.Mock
}

func (m *MockSummaryReader) SummaryForContact(ctx context.Context, contactID uuid.UUID) (*ledger.AccountSummary, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountSummary), args.Error(1)
}

func (m *MockSummaryReader) ListSummaries(ctx context.Context, filter ledger.SummaryFilter) ([]ledger.AccountSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.AccountSummary), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByContactID(ctx context.Context, contactID uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context) ([]ledger.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.AccountTransaction, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]ledger.AccountTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByAccountAndReference(ctx context.Context, accountID uuid.UUID, ref ledger.ReferenceType) ([]ledger.AccountTransaction, error) {
	args := m.Called(ctx, accountID, ref)
	return args.Get(0).([]ledger.AccountTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListBySeason(ctx context.Context, seasonID uuid.UUID, ref ledger.ReferenceType, typ ledger.TransactionType) ([]ledger.AccountTransaction, error) {
	args := m.Called(ctx, seasonID, ref, typ)
	return args.Get(0).([]ledger.AccountTransaction), args.Error(1)
}

type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, contactID uuid.UUID, tx *ledger.AccountTransaction) (*ledger.Account, error) {
	args := m.Called(ctx, contactID, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]trade.Sale, error) {
	args := m.Called(ctx, contactID)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Sale, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]trade.Purchase, error) {
	args := m.Called(ctx, contactID)
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Purchase, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindAttributed(ctx context.Context, filter trade.DeliveryFilter) ([]trade.Delivery, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]trade.Delivery, error) {
	args := m.Called(ctx, seasonID)
	return args.Get(0).([]trade.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// mapCache is an in-process QueryCache that round-trips values through JSON
// like the real backends do.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
