package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/report"
	seasonapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/report"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

// dateLayout is the wire format of calendar dates
const dateLayout = "2006-01-02"

// SeasonService manages the season lifecycle
type SeasonService interface {
	ListSeasons(ctx context.Context) ([]season.Season, error)
	GetActiveSeason(ctx context.Context) (*season.Season, error)
	StartNewSeason(ctx context.Context, in seasonapp.StartSeasonInput) (*season.Season, error)
}

// SeasonReportService builds the aggregate report of a season
type SeasonReportService interface {
	GetSeasonReport(ctx context.Context, seasonID uuid.UUID) (*report.SeasonReport, error)
}

var (
	_ SeasonService       = (*seasonapp.SeasonService)(nil)
	_ SeasonReportService = (*reportapp.SeasonReportService)(nil)
)

// SeasonHandler serves seasons and their reports
type SeasonHandler struct {
	BaseHandler
	seasons SeasonService
	reports SeasonReportService
}

// NewSeasonHandler creates a new SeasonHandler
func NewSeasonHandler(seasons SeasonService, reports SeasonReportService) *SeasonHandler {
	return &SeasonHandler{seasons: seasons, reports: reports}
}

// StartSeasonRequest is the body of POST /seasons. Dates are YYYY-MM-DD.
type StartSeasonRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// Routes returns the season routes
func (h *SeasonHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("seasons", "/seasons")
	g.GET("", h.List)
	g.GET("/active", h.GetActive)
	g.POST("", h.Start)
	g.GET("/:id/report", h.GetReport)
	return g
}

// List returns every season, newest start first
func (h *SeasonHandler) List(c *gin.Context) {
	seasons, err := h.seasons.ListSeasons(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	List(c, seasons)
}

// GetActive returns the active season or 404
func (h *SeasonHandler) GetActive(c *gin.Context) {
	s, err := h.seasons.GetActiveSeason(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Start closes every season and opens a new active one
func (h *SeasonHandler) Start(c *gin.Context) {
	var req StartSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	// Layout already checked by the datetime tag
	start, _ := time.Parse(dateLayout, req.StartDate)
	in := seasonapp.StartSeasonInput{Name: req.Name, StartDate: start}
	if req.EndDate != "" {
		end, _ := time.Parse(dateLayout, req.EndDate)
		in.EndDate = &end
	}

	s, err := h.seasons.StartNewSeason(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// GetReport returns the season's aggregate report
func (h *SeasonHandler) GetReport(c *gin.Context) {
	seasonID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	r, err := h.reports.GetSeasonReport(c.Request.Context(), seasonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}
