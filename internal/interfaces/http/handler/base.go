package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/logger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// List sends a full list with its length. nil slices are sent as [].
func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, dto.NewListResponse(items, len(items)))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// BindError reports a request that failed binding, listing the rejected
// fields when the failure came from validation.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", getRequestID(c), details))
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
}

// HandleError converts domain errors to their HTTP status and hides
// everything else behind a 500, logging the cause.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("Unexpected error", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// pathUUID parses the named path parameter, answering 400 when malformed
func (h *BaseHandler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// userID returns the authenticated user's id, answering 401 when absent
func (h *BaseHandler) userID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok || id.UserID == "" {
		h.Unauthorized(c, "authentication required")
		return "", false
	}
	return id.UserID, true
}
