package handlers

import (
	"errors"
	"net/http"

	"kanban_backend/internal/domain"
	"kanban_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalErrorMessage = "An internal error occurred"

// ok writes a success envelope. payload keys are merged next to "success".
func ok(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

func okMessage(c *gin.Context, message string, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["message"] = message
	ok(c, payload)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func forbidden(c *gin.Context) {
	fail(c, http.StatusForbidden, "Access denied")
}

func unauthorized(c *gin.Context) {
	fail(c, http.StatusUnauthorized, "Authentication required")
}

func badRequest(c *gin.Context) {
	fail(c, http.StatusBadRequest, "Invalid request body")
}

// respondError maps domain errors to status codes. Anything unrecognised
// is logged and reported as a 500 without detail outside development.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ve.Message)
	case errors.As(err, &verrs) && len(verrs) > 0:
		fail(c, http.StatusBadRequest, validationMessage(verrs[0]))
	case errors.Is(err, domain.ErrUnauthorized):
		unauthorized(c)
	case errors.Is(err, domain.ErrForbidden):
		forbidden(c)
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrConflict):
		fail(c, http.StatusBadRequest, "Resource already exists")
	default:
		logger.WithContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			"error", err, "method", c.Request.Method, "path", c.FullPath())
		body := gin.H{"success": false, "message": internalErrorMessage}
		if h.Development {
			body["error"] = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, param, label string) (int64, error) {
	return domain.ParseID(param, label, c.Param(param))
}

// NotAllowed answers routes matched with an unsupported method.
func NotAllowed(c *gin.Context) {
	fail(c, http.StatusMethodNotAllowed, "Method not allowed")
}

func NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, "Resource not found")
}
