package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/middleware"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/router"
)

// IdentityHandler exposes the authenticated caller
type IdentityHandler struct {
	BaseHandler
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler() *IdentityHandler {
	return &IdentityHandler{}
}

// Routes returns the /me route
func (h *IdentityHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("identity", "/me")
	g.GET("", h.Me)
	return g
}

// Me returns the identity resolved from the bearer token
func (h *IdentityHandler) Me(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		h.Unauthorized(c, "authentication required")
		return
	}
	h.Success(c, id)
}
