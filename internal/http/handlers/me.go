package handlers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}

	user, err := h.Auth.User(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, gin.H{"user": user})
}
