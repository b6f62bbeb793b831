package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt reads a non-negative integer query parameter, falling back to def.
func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (h *Handler) BoardActivity(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	boardID, err := pathID(c, "id", "board ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canView(c, userID, boardID) {
		return
	}

	items, err := h.Activity.BoardActivity(c.Request.Context(), boardID, queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"activities": items})
}

func (h *Handler) CardActivity(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	cardID, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	card, err := h.Cards.GetByID(ctx, cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canView(c, userID, card.BoardID) {
		return
	}

	items, err := h.Activity.CardActivity(ctx, cardID, queryInt(c, "limit", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"activities": items})
}
