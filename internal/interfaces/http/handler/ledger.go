package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

// LedgerService is the part of the ledger application service the API uses
type LedgerService interface {
	GetContactLedger(ctx context.Context, contactID uuid.UUID) (*ledger.ContactLedger, error)
	VerifyAccount(ctx context.Context, contactID uuid.UUID) (*ledger.AccountReconciliation, error)
	PostTransaction(ctx context.Context, in ledgerapp.PostTransactionInput) (*ledger.AccountTransaction, error)
	ListAccountSummaries(ctx context.Context, filter ledger.SummaryFilter) ([]ledger.AccountSummary, error)
}

// DeliveryService lists the priced deliveries of a contact
type DeliveryService interface {
	DeliveriesForContact(ctx context.Context, contactID uuid.UUID) ([]trade.PricedDelivery, error)
}

var (
	_ LedgerService   = (*ledgerapp.LedgerService)(nil)
	_ DeliveryService = (*ledgerapp.DeliveryService)(nil)
)

// LedgerHandler serves contact ledgers, postings and account summaries
type LedgerHandler struct {
	BaseHandler
	ledger     LedgerService
	deliveries DeliveryService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledger LedgerService, deliveries DeliveryService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, deliveries: deliveries}
}

// PostTransactionRequest is the body of POST /contacts/:id/transactions
type PostTransactionRequest struct {
	Type            string          `json:"type" binding:"required,oneof=debit credit"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description     string          `json:"description" binding:"max=500"`
	ReferenceType   string          `json:"reference_type" binding:"omitempty,oneof=sale purchase delivery payment manual"`
	ReferenceID     *uuid.UUID      `json:"reference_id"`
	SeasonID        *uuid.UUID      `json:"season_id"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// AccountListQuery filters GET /accounts
type AccountListQuery struct {
	ContactType string `form:"contact_type" binding:"omitempty,oneof=supplier customer both"`
	NonZero     bool   `form:"non_zero"`
}

// Routes returns the contact and account routes
func (h *LedgerHandler) Routes() []*router.DomainGroup {
	contacts := router.NewDomainGroup("contacts", "/contacts")
	contacts.GET("/:id/ledger", h.GetLedger)
	contacts.GET("/:id/ledger/verify", h.VerifyAccount)
	contacts.POST("/:id/transactions", h.PostTransaction)
	contacts.GET("/:id/deliveries", h.ListDeliveries)

	accounts := router.NewDomainGroup("accounts", "/accounts")
	accounts.GET("", h.ListAccounts)

	return []*router.DomainGroup{contacts, accounts}
}

// GetLedger returns the contact, its balance and its transactions, newest first
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	contactID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	l, err := h.ledger.GetContactLedger(c.Request.Context(), contactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, l)
}

// VerifyAccount recomputes the contact's balance from its transactions
func (h *LedgerHandler) VerifyAccount(c *gin.Context) {
	contactID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	r, err := h.ledger.VerifyAccount(c.Request.Context(), contactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// PostTransaction books a debit or credit against the contact's account
func (h *LedgerHandler) PostTransaction(c *gin.Context) {
	contactID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	in := ledgerapp.PostTransactionInput{
		ContactID: contactID,
		NewTransactionInput: ledger.NewTransactionInput{
			Type:          ledger.TransactionType(req.Type),
			Amount:        req.Amount,
			Description:   req.Description,
			ReferenceType: ledger.ReferenceType(req.ReferenceType),
			ReferenceID:   req.ReferenceID,
			SeasonID:      req.SeasonID,
		},
	}
	if req.TransactionDate != nil {
		in.TransactionDate = *req.TransactionDate
	}

	tx, err := h.ledger.PostTransaction(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// ListDeliveries returns the priced deliveries of the contact, newest first
func (h *LedgerHandler) ListDeliveries(c *gin.Context) {
	contactID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	deliveries, err := h.deliveries.DeliveriesForContact(c.Request.Context(), contactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, deliveries)
}

// ListAccounts returns the per-contact balance summaries
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	var q AccountListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	summaries, err := h.ledger.ListAccountSummaries(c.Request.Context(), ledger.SummaryFilter{
		ContactType: ledger.ContactType(q.ContactType),
		NonZeroOnly: q.NonZero,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, summaries)
}
