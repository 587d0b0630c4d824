package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	// maxBodyBytes bounds form posts; 0 means unlimited
	maxBodyBytes int64
}

// NewBaseHandler creates a new base handler.
func NewBaseHandler(maxBodyBytes int64) *BaseHandler {
	return &BaseHandler{maxBodyBytes: maxBodyBytes}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindForm binds a urlencoded or multipart form. The returned error is an
// AppError listing blank required fields, or 413 when the body is too big.
func (h *BaseHandler) BindForm(c *gin.Context, obj any) error {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}
	if err := c.ShouldBind(obj); err != nil {
		return translateBindError(err, h.maxBodyBytes)
	}
	return nil
}

// Error processes error and sends appropriate response.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	h.HandleError(c, err)
}

// HandleError registers error on Gin context and aborts request.
// Actual response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIntQuery parses integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseID parses a positive integer path parameter.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewInvalidInput(param, "must be a positive integer")
	}
	return id, nil
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Success sends the envelope used by submission endpoints.
func (h *BaseHandler) Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message, Data: data})
}
