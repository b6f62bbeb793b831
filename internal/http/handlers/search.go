package handlers

import (
	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// SearchCards finds cards on boards the caller can see.
func (h *Handler) SearchCards(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	q := domain.SearchQuery{UserID: userID, Term: c.Query("q")}

	if raw := c.Query("workspace_id"); raw != "" {
		id, err := domain.ParseID("workspace_id", "workspace ID", raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		q.WorkspaceID = &id
	}
	if raw := c.Query("board_id"); raw != "" {
		id, err := domain.ParseID("board_id", "board ID", raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		q.BoardID = &id
	}

	results, err := h.Search.Search(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"results": results, "count": len(results)})
}
