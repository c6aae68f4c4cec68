package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/logger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/persistence"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

const healthPingTimeout = 2 * time.Second

// DatabaseChecker checks the database and reports its connection pool
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	Stats() (persistence.ConnectionStats, error)
}

var _ DatabaseChecker = (*persistence.Database)(nil)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string                       `json:"status"`
	Time     string                       `json:"time"`
	Database string                       `json:"database"`
	Pool     *persistence.ConnectionStats `json:"pool,omitempty"`
	Views    map[string]bool              `json:"views,omitempty"`
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	db    DatabaseChecker
	views map[string]bool
}

// NewHealthHandler creates a HealthHandler. views lists the reporting
// views found at startup.
func NewHealthHandler(db DatabaseChecker, views map[string]bool) *HealthHandler {
	return &HealthHandler{db: db, views: views}
}

// Routes returns the unauthenticated /health route
func (h *HealthHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("health", "/health")
	g.GET("", h.Health)
	return g
}

// Health answers 200 when the database responds and 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Database: "ok",
		Views:    h.views,
	}
	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	if stats, err := h.db.Stats(); err == nil {
		resp.Pool = &stats
	}
	c.JSON(http.StatusOK, resp)
}
