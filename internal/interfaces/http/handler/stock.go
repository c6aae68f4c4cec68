package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	carrierapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/carrier"
	inventoryapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/inventory"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/inventory"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

// CarrierBalanceService lists freight balances per carrier
type CarrierBalanceService interface {
	ListCarrierBalances(ctx context.Context) ([]carrier.Balance, error)
}

// InventorySummaryService lists on-hand quantities
type InventorySummaryService interface {
	ListInventorySummary(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockLevel, error)
}

var (
	_ CarrierBalanceService   = (*carrierapp.BalanceService)(nil)
	_ InventorySummaryService = (*inventoryapp.SummaryService)(nil)
)

// StockHandler serves the carrier balance and inventory summary views
type StockHandler struct {
	BaseHandler
	carriers  CarrierBalanceService
	inventory InventorySummaryService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(carriers CarrierBalanceService, inventory InventorySummaryService) *StockHandler {
	return &StockHandler{carriers: carriers, inventory: inventory}
}

// InventorySummaryQuery filters GET /inventory/summary
type InventorySummaryQuery struct {
	WarehouseID string `form:"warehouse_id" binding:"omitempty,uuid"`
}

// Routes returns the carrier and inventory routes
func (h *StockHandler) Routes() []*router.DomainGroup {
	carriers := router.NewDomainGroup("carriers", "/carriers")
	carriers.GET("/balances", h.ListCarrierBalances)

	inv := router.NewDomainGroup("inventory", "/inventory")
	inv.GET("/summary", h.ListInventorySummary)

	return []*router.DomainGroup{carriers, inv}
}

// ListCarrierBalances returns freight owed and paid per carrier
func (h *StockHandler) ListCarrierBalances(c *gin.Context) {
	balances, err := h.carriers.ListCarrierBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, balances)
}

// ListInventorySummary returns stock per warehouse and feed type,
// optionally for a single warehouse
func (h *StockHandler) ListInventorySummary(c *gin.Context) {
	var q InventorySummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	var warehouseID *uuid.UUID
	if q.WarehouseID != "" {
		id := uuid.MustParse(q.WarehouseID)
		warehouseID = &id
	}

	levels, err := h.inventory.ListInventorySummary(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, levels)
}
