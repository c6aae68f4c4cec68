package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/ledger"
	photoapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/photo"
	seasonapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/identity"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/inventory"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/photo"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/preference"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/report"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/middleware"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestEngine mounts groups under /api/v1 behind a fake auth layer that
// signs the request in as user when user is non-empty.
func newTestEngine(user string, groups ...*router.DomainGroup) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := router.NewRouter(engine, router.WithMiddleware(func(c *gin.Context) {
		if user != "" {
			c.Set(middleware.IdentityKey, &identity.Identity{UserID: user, Email: user + "@farm.example"})
		}
		c.Next()
	}))
	for _, g := range groups {
		r.Register(g)
	}
	r.Setup()
	return engine
}

func doRequest(engine *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the envelope and, when data is non-nil, its payload
func decode(t *testing.T, w *httptest.ResponseRecorder, data any) dto.Response {
	t.Helper()
	var env struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Response
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetContactLedger(ctx context.Context, contactID uuid.UUID) (*ledger.ContactLedger, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ContactLedger), args.Error(1)
}

func (m *MockLedgerService) VerifyAccount(ctx context.Context, contactID uuid.UUID) (*ledger.AccountReconciliation, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountReconciliation), args.Error(1)
}

func (m *MockLedgerService) PostTransaction(ctx context.Context, in ledgerapp.PostTransactionInput) (*ledger.AccountTransaction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountTransaction), args.Error(1)
}

func (m *MockLedgerService) ListAccountSummaries(ctx context.Context, filter ledger.SummaryFilter) ([]ledger.AccountSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountSummary), args.Error(1)
}

type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) DeliveriesForContact(ctx context.Context, contactID uuid.UUID) ([]trade.PricedDelivery, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PricedDelivery), args.Error(1)
}

type MockSeasonService struct {
	mock.Mock
}

func (m *MockSeasonService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]season.Season), args.Error(1)
}

func (m *MockSeasonService) GetActiveSeason(ctx context.Context) (*season.Season, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

func (m *MockSeasonService) StartNewSeason(ctx context.Context, in seasonapp.StartSeasonInput) (*season.Season, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*season.Season), args.Error(1)
}

type MockSeasonReportService struct {
	mock.Mock
}

func (m *MockSeasonReportService) GetSeasonReport(ctx context.Context, seasonID uuid.UUID) (*report.SeasonReport, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SeasonReport), args.Error(1)
}

type MockCarrierBalanceService struct {
	mock.Mock
}

func (m *MockCarrierBalanceService) ListCarrierBalances(ctx context.Context) ([]carrier.Balance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]carrier.Balance), args.Error(1)
}

type MockInventorySummaryService struct {
	mock.Mock
}

func (m *MockInventorySummaryService) ListInventorySummary(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) UploadPhoto(ctx context.Context, in photoapp.UploadPhotoInput) (*photo.Photo, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photo.Photo), args.Error(1)
}

func (m *MockPhotoService) ListPhotos(ctx context.Context, deliveryID uuid.UUID) ([]photo.Photo, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]photo.Photo), args.Error(1)
}

type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) GetMessageTemplate(ctx context.Context, userID, name string) (string, bool, error) {
	args := m.Called(ctx, userID, name)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferenceService) ListMessageTemplates(ctx context.Context, userID string) (map[string]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockPreferenceService) SetMessageTemplate(ctx context.Context, userID, name, body string) error {
	return m.Called(ctx, userID, name, body).Error(0)
}

func (m *MockPreferenceService) DeleteMessageTemplate(ctx context.Context, userID, name string) error {
	return m.Called(ctx, userID, name).Error(0)
}

func (m *MockPreferenceService) ListShipmentTemplates(ctx context.Context, userID string) ([]preference.ShipmentTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]preference.ShipmentTemplate), args.Error(1)
}

func (m *MockPreferenceService) SaveShipmentTemplate(ctx context.Context, userID string, tpl preference.ShipmentTemplate) error {
	return m.Called(ctx, userID, tpl).Error(0)
}

func (m *MockPreferenceService) DeleteShipmentTemplate(ctx context.Context, userID, name string) error {
	return m.Called(ctx, userID, name).Error(0)
}

func (m *MockPreferenceService) GetBalanceVisible(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPreferenceService) SetBalanceVisible(ctx context.Context, userID string, visible bool) error {
	return m.Called(ctx, userID, visible).Error(0)
}

func (m *MockPreferenceService) GetSeasonFilter(ctx context.Context, userID string) (preference.SeasonFilter, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(preference.SeasonFilter), args.Error(1)
}

func (m *MockPreferenceService) SetSeasonFilter(ctx context.Context, userID string, f preference.SeasonFilter) error {
	return m.Called(ctx, userID, f).Error(0)
}
