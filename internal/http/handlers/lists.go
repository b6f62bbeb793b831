package handlers

import (
	"fmt"

	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type createListRequest struct {
	BoardID int64  `json:"board_id" form:"board_id" binding:"required,gt=0" label:"Board ID"`
	Title   string `json:"title" form:"title" binding:"required,max=255" label:"List title"`
}

type updateListRequest struct {
	Title    *string `json:"title" form:"title" binding:"omitnil,max=255" label:"List title"`
	Position *int    `json:"position" form:"position" binding:"omitnil,gt=0" label:"Position"`
}

func (h *Handler) ListBoardLists(c *gin.Context) {
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

	lists, err := h.Lists.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"lists": lists})
}

// CreateList appends a list to the end of the board.
func (h *Handler) CreateList(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	var req createListRequest
	if !h.bind(c, &req) {
		return
	}
	title, err := domain.RequiredText("title", "List title", req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, req.BoardID) {
		return
	}
	ctx := c.Request.Context()

	l := &domain.List{BoardID: req.BoardID, Title: title}
	if err := h.Lists.Create(ctx, l); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, l.BoardID, nil, userID, domain.ActivityListCreated, fmt.Sprintf("Created list %q", l.Title))
	okMessage(c, "List created", gin.H{"list": l})
}

func (h *Handler) UpdateList(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "list ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req updateListRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Title == nil && req.Position == nil {
		h.respondError(c, domain.Invalid("title", "Nothing to update"))
		return
	}
	ctx := c.Request.Context()

	l, err := h.Lists.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, l.BoardID) {
		return
	}

	title := l.Title
	if req.Title != nil {
		if title, err = domain.RequiredText("title", "List title", *req.Title); err != nil {
			h.respondError(c, err)
			return
		}
	}
	updated, err := h.Lists.Update(ctx, id, title, req.Position)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, updated.BoardID, nil, userID, domain.ActivityListUpdated, fmt.Sprintf("Updated list %q", updated.Title))
	okMessage(c, "List updated", gin.H{"list": updated})
}

// DeleteList removes the list together with its cards.
func (h *Handler) DeleteList(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "list ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	l, err := h.Lists.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, l.BoardID) {
		return
	}
	if err := h.Lists.Delete(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, l.BoardID, nil, userID, domain.ActivityListDeleted, fmt.Sprintf("Deleted list %q", l.Title))
	okMessage(c, "List deleted", nil)
}
