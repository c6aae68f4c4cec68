package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/inventory"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
)

func newStockTestHandler() (*MockCarrierBalanceService, *MockInventorySummaryService, *gin.Engine) {
	cs := new(MockCarrierBalanceService)
	is := new(MockInventorySummaryService)
	h := NewStockHandler(cs, is)
	return cs, is, newTestEngine("user-1", h.Routes()...)
}

func TestStockHandler_ListCarrierBalances(t *testing.T) {
	cs, _, engine := newStockTestHandler()
	cs.On("ListCarrierBalances", mock.Anything).Return([]carrier.Balance{
		{CarrierID: uuid.New(), CarrierName: "Demir Nakliyat", TotalFreight: decimal.NewFromInt(12000), TotalPaid: decimal.NewFromInt(5000), Balance: decimal.NewFromInt(7000)},
	}, nil)

	w := doRequest(engine, http.MethodGet, "/api/v1/carriers/balances", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []carrier.Balance
	resp := decode(t, w, &got)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, "Demir Nakliyat", got[0].CarrierName)
	assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(7000)))
}

func TestStockHandler_ListCarrierBalances_Error(t *testing.T) {
	cs, _, engine := newStockTestHandler()
	cs.On("ListCarrierBalances", mock.Anything).Return(nil, errors.New("connection reset"))

	w := doRequest(engine, http.MethodGet, "/api/v1/carriers/balances", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStockHandler_ListInventorySummary(t *testing.T) {
	t.Run("all warehouses", func(t *testing.T) {
		_, is, engine := newStockTestHandler()
		is.On("ListInventorySummary", mock.Anything, (*uuid.UUID)(nil)).Return([]inventory.StockLevel{
			{WarehouseName: "Depo 1", FeedTypeName: "Yonca", Quantity: decimal.NewFromInt(80)},
		}, nil)

		w := doRequest(engine, http.MethodGet, "/api/v1/inventory/summary", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got []inventory.StockLevel
		decode(t, w, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "Yonca", got[0].FeedTypeName)
		is.AssertExpectations(t)
	})

	t.Run("one warehouse", func(t *testing.T) {
		_, is, engine := newStockTestHandler()
		warehouseID := uuid.New()
		is.On("ListInventorySummary", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
			return id != nil && *id == warehouseID
		})).Return([]inventory.StockLevel{}, nil)

		w := doRequest(engine, http.MethodGet, "/api/v1/inventory/summary?warehouse_id="+warehouseID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		is.AssertExpectations(t)
	})

	t.Run("malformed warehouse id", func(t *testing.T) {
		_, is, engine := newStockTestHandler()

		w := doRequest(engine, http.MethodGet, "/api/v1/inventory/summary?warehouse_id=depo-1", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, w, nil).Error.Code)
		is.AssertNotCalled(t, "ListInventorySummary", mock.Anything, mock.Anything)
	})
}
