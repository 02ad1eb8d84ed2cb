package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/ordercash/backend/internal/interfaces/http/dto"
	"github.com/ordercash/backend/internal/interfaces/http/middleware"
)

// defaultTenantID is used when a request carries no tenant context.
// It only exists for local development; production tokens always
// carry a tenant claim.
var defaultTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// BaseHandler provides common response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

// Success sends a 200 response with the given data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with the given data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorWithCode sends an error response with an explicit code and status
func (h *BaseHandler) ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, h.getRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// Conflict sends a 409 response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// UnprocessableEntity sends a 422 response
func (h *BaseHandler) UnprocessableEntity(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusUnprocessableEntity, dto.ErrCodeBusinessRule, message)
}

// InternalError sends a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.ErrorWithCode(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 response carrying field-level details
func (h *BaseHandler) ValidationError(c *gin.Context, message string, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(message, h.getRequestID(c), details))
}

// BindingError maps a request binding failure to a response. Validator
// failures carry field-level details; malformed payloads get a plain 400.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, h.getRequestID(c)))
		return
	}
	h.BadRequest(c, err.Error())
}

// HandleError maps a service error to the appropriate HTTP response.
// Domain errors keep their code; everything else becomes a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.ErrorWithCode(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	h.logger.Error("unhandled service error",
		zap.String("path", c.FullPath()),
		zap.String("request_id", h.getRequestID(c)),
		zap.Error(err),
	)
	h.InternalError(c, "internal server error")
}

// getRequestID returns the request ID set by the RequestID middleware
func (h *BaseHandler) getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getTenantID resolves the tenant for the current request. JWT claims
// win; the X-Tenant-ID header and the development default are fallbacks.
func (h *BaseHandler) getTenantID(c *gin.Context) (uuid.UUID, error) {
	if raw := middleware.GetJWTTenantID(c); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, errors.New("invalid tenant id in token")
		}
		return id, nil
	}

	if raw := c.GetHeader("X-Tenant-ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, errors.New("invalid X-Tenant-ID header")
		}
		return id, nil
	}

	return defaultTenantID, nil
}

// getUserID resolves the authenticated user for the current request
func (h *BaseHandler) getUserID(c *gin.Context) (uuid.UUID, error) {
	if raw := middleware.GetJWTUserID(c); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, errors.New("invalid user id in token")
		}
		return id, nil
	}

	if raw := c.GetHeader("X-User-ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, errors.New("invalid X-User-ID header")
		}
		return id, nil
	}

	return uuid.Nil, errors.New("no user context")
}

// bindUUIDParam parses a uuid path parameter
func (h *BaseHandler) bindUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.ErrorWithCode(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
