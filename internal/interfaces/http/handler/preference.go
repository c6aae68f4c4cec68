package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	preferenceapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/preference"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/preference"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

// PreferenceService reads and writes the per-user preference store
type PreferenceService interface {
	GetMessageTemplate(ctx context.Context, userID, name string) (string, bool, error)
	ListMessageTemplates(ctx context.Context, userID string) (map[string]string, error)
	SetMessageTemplate(ctx context.Context, userID, name, body string) error
	DeleteMessageTemplate(ctx context.Context, userID, name string) error
	ListShipmentTemplates(ctx context.Context, userID string) ([]preference.ShipmentTemplate, error)
	SaveShipmentTemplate(ctx context.Context, userID string, tpl preference.ShipmentTemplate) error
	DeleteShipmentTemplate(ctx context.Context, userID, name string) error
	GetBalanceVisible(ctx context.Context, userID string) (bool, error)
	SetBalanceVisible(ctx context.Context, userID string, visible bool) error
	GetSeasonFilter(ctx context.Context, userID string) (preference.SeasonFilter, error)
	SetSeasonFilter(ctx context.Context, userID string, f preference.SeasonFilter) error
}

var _ PreferenceService = (*preferenceapp.PreferenceService)(nil)

// PreferenceHandler serves the authenticated user's preferences
type PreferenceHandler struct {
	BaseHandler
	prefs PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(prefs PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// MessageTemplateRequest is the body of PUT /preferences/message-templates/:name
type MessageTemplateRequest struct {
	Body string `json:"body" binding:"required"`
}

// MessageTemplateResponse is one message template override
type MessageTemplateResponse struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// ShipmentTemplateRequest is the body of PUT /preferences/shipment-templates/:name
type ShipmentTemplateRequest struct {
	ContactID   *uuid.UUID `json:"contact_id"`
	CarrierID   *uuid.UUID `json:"carrier_id"`
	FeedTypeID  *uuid.UUID `json:"feed_type_id"`
	PlateNumber string     `json:"plate_number" binding:"max=20"`
	Notes       string     `json:"notes" binding:"max=500"`
}

// BalanceVisibleRequest toggles balance visibility
type BalanceVisibleRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// BalanceVisibleResponse reports balance visibility
type BalanceVisibleResponse struct {
	Visible bool `json:"visible"`
}

// SeasonFilterRequest selects "all" or one season id
type SeasonFilterRequest struct {
	Season string `json:"season" binding:"required"`
}

// Routes returns the preference routes
func (h *PreferenceHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("preferences", "/preferences")

	g.GET("/message-templates", h.ListMessageTemplates)
	g.GET("/message-templates/:name", h.GetMessageTemplate)
	g.PUT("/message-templates/:name", h.SetMessageTemplate)
	g.DELETE("/message-templates/:name", h.DeleteMessageTemplate)

	g.GET("/shipment-templates", h.ListShipmentTemplates)
	g.PUT("/shipment-templates/:name", h.SaveShipmentTemplate)
	g.DELETE("/shipment-templates/:name", h.DeleteShipmentTemplate)

	g.GET("/balance-visible", h.GetBalanceVisible)
	g.PUT("/balance-visible", h.SetBalanceVisible)
	g.GET("/season-filter", h.GetSeasonFilter)
	g.PUT("/season-filter", h.SetSeasonFilter)
	return g
}

// ListMessageTemplates returns every override keyed by template name
func (h *PreferenceHandler) ListMessageTemplates(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	templates, err := h.prefs.ListMessageTemplates(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

// GetMessageTemplate returns one override, 404 when the built-in template applies
func (h *PreferenceHandler) GetMessageTemplate(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	name := c.Param("name")
	body, found, err := h.prefs.GetMessageTemplate(c.Request.Context(), userID, name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !found {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "no override for message template "+name)
		return
	}
	h.Success(c, MessageTemplateResponse{Name: name, Body: body})
}

// SetMessageTemplate stores an override
func (h *PreferenceHandler) SetMessageTemplate(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req MessageTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	name := c.Param("name")
	if err := h.prefs.SetMessageTemplate(c.Request.Context(), userID, name, req.Body); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageTemplateResponse{Name: name, Body: req.Body})
}

// DeleteMessageTemplate restores the built-in template
func (h *PreferenceHandler) DeleteMessageTemplate(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.prefs.DeleteMessageTemplate(c.Request.Context(), userID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListShipmentTemplates returns the saved shipment templates sorted by name
func (h *PreferenceHandler) ListShipmentTemplates(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	templates, err := h.prefs.ListShipmentTemplates(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, templates)
}

// SaveShipmentTemplate creates or replaces the named template
func (h *PreferenceHandler) SaveShipmentTemplate(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req ShipmentTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	tpl := preference.ShipmentTemplate{
		Name:        c.Param("name"),
		ContactID:   req.ContactID,
		CarrierID:   req.CarrierID,
		FeedTypeID:  req.FeedTypeID,
		PlateNumber: req.PlateNumber,
		Notes:       req.Notes,
	}
	if err := h.prefs.SaveShipmentTemplate(c.Request.Context(), userID, tpl); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tpl)
}

// DeleteShipmentTemplate removes the named template
func (h *PreferenceHandler) DeleteShipmentTemplate(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.prefs.DeleteShipmentTemplate(c.Request.Context(), userID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetBalanceVisible reports whether balances are shown
func (h *PreferenceHandler) GetBalanceVisible(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	visible, err := h.prefs.GetBalanceVisible(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, BalanceVisibleResponse{Visible: visible})
}

// SetBalanceVisible stores the toggle
func (h *PreferenceHandler) SetBalanceVisible(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req BalanceVisibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if err := h.prefs.SetBalanceVisible(c.Request.Context(), userID, *req.Visible); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, BalanceVisibleResponse{Visible: *req.Visible})
}

// GetSeasonFilter returns the stored filter, all seasons by default
func (h *PreferenceHandler) GetSeasonFilter(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	f, err := h.prefs.GetSeasonFilter(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// SetSeasonFilter stores "all" or a season id
func (h *PreferenceHandler) SetSeasonFilter(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req SeasonFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	f, err := preference.ParseSeasonFilter(req.Season)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.prefs.SetSeasonFilter(c.Request.Context(), userID, f); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}
