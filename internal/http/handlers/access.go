package handlers

import (
	"github.com/gin-gonic/gin"
)

// allow writes the error or 403 response and reports whether the caller may proceed.
func (h *Handler) allow(c *gin.Context, allowed bool, err error) bool {
	if err != nil {
		h.respondError(c, err)
		return false
	}
	if !allowed {
		forbidden(c)
		return false
	}
	return true
}

func (h *Handler) canView(c *gin.Context, userID, boardID int64) bool {
	allowed, err := h.Access.HasAccessToBoard(c.Request.Context(), userID, boardID)
	return h.allow(c, allowed, err)
}

func (h *Handler) canEdit(c *gin.Context, userID, boardID int64) bool {
	allowed, err := h.Access.CanEditBoard(c.Request.Context(), userID, boardID)
	return h.allow(c, allowed, err)
}

// caller returns the authenticated user or writes 401.
func caller(c *gin.Context) (int64, bool) {
	userID, found := getUserID(c)
	if !found {
		unauthorized(c)
	}
	return userID, found
}
