package handlers

import (
	"fmt"
	"strings"

	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type createLabelRequest struct {
	BoardID int64  `json:"board_id" form:"board_id" binding:"required,gt=0" label:"Board ID"`
	Name    string `json:"name" form:"name" binding:"required,max=50" label:"Label name"`
	Color   string `json:"color" form:"color" binding:"required,len=7,hexcolor" label:"Color"`
}

type updateLabelRequest struct {
	Name  *string `json:"name" form:"name" binding:"omitnil,max=50" label:"Label name"`
	Color *string `json:"color" form:"color" binding:"omitnil,len=7,hexcolor" label:"Color"`
}

type toggleLabelRequest struct {
	LabelID int64 `json:"label_id" form:"label_id" binding:"required,gt=0" label:"Label ID"`
}

func (h *Handler) ListBoardLabels(c *gin.Context) {
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

	labels, err := h.Labels.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"labels": labels})
}

func (h *Handler) CreateLabel(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	var req createLabelRequest
	if !h.bind(c, &req) {
		return
	}
	name, err := domain.RequiredText("name", "Label name", req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, req.BoardID) {
		return
	}
	ctx := c.Request.Context()

	l := &domain.Label{BoardID: req.BoardID, Name: name, Color: strings.ToUpper(req.Color)}
	if err := h.Labels.Create(ctx, l); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, l.BoardID, nil, userID, domain.ActivityLabelCreated, fmt.Sprintf("Created label %q", l.Name))
	okMessage(c, "Label created", gin.H{"label": l})
}

func (h *Handler) UpdateLabel(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "label ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req updateLabelRequest
	if !h.bind(c, &req) {
		return
	}
	ctx := c.Request.Context()

	l, err := h.Labels.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, l.BoardID) {
		return
	}

	name, color := l.Name, l.Color
	if req.Name != nil {
		if name, err = domain.RequiredText("name", "Label name", *req.Name); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.Color != nil {
		color = strings.ToUpper(*req.Color)
	}

	updated, err := h.Labels.Update(ctx, id, name, color)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, l.BoardID, nil, userID, domain.ActivityLabelUpdated, fmt.Sprintf("Updated label %q", updated.Name))
	okMessage(c, "Label updated", gin.H{"label": updated})
}

func (h *Handler) DeleteLabel(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "label ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	l, err := h.Labels.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, l.BoardID) {
		return
	}
	if err := h.Labels.Delete(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, l.BoardID, nil, userID, domain.ActivityLabelDeleted, fmt.Sprintf("Deleted label %q", l.Name))
	okMessage(c, "Label deleted", nil)
}

// ToggleCardLabel attaches the label when absent and detaches it when present.
func (h *Handler) ToggleCardLabel(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	cardID, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req toggleLabelRequest
	if !h.bind(c, &req) {
		return
	}
	ctx := c.Request.Context()

	card, err := h.Cards.GetByID(ctx, cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, card.BoardID) {
		return
	}
	label, err := h.Labels.GetByID(ctx, req.LabelID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if label.BoardID != card.BoardID {
		h.respondError(c, domain.Invalid("label_id", "Label does not belong to this board"))
		return
	}

	attached, err := h.Labels.Toggle(ctx, cardID, label.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if attached {
		h.Activity.Log(ctx, card.BoardID, &card.ID, userID, domain.ActivityLabelAdded,
			fmt.Sprintf("Added label %q to %q", label.Name, card.Title))
		okMessage(c, "Label added", gin.H{"attached": true})
		return
	}
	h.Activity.Log(ctx, card.BoardID, &card.ID, userID, domain.ActivityLabelRemoved,
		fmt.Sprintf("Removed label %q from %q", label.Name, card.Title))
	okMessage(c, "Label removed", gin.H{"attached": false})
}
