package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type createCardRequest struct {
	ListID      int64  `json:"list_id" form:"list_id" binding:"required,gt=0" label:"List ID"`
	Title       string `json:"title" form:"title" binding:"required,max=255" label:"Card title"`
	Description string `json:"description" form:"description" binding:"max=2000" label:"Description"`
	DueDate     string `json:"due_date" form:"due_date" binding:"omitempty,datetime=2006-01-02" label:"Due date"`
	Priority    string `json:"priority" form:"priority" binding:"omitempty,oneof=low medium high" label:"Priority"`
}

// updateCardRequest distinguishes absent fields (nil) from cleared ones ("").
type updateCardRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitnil,max=255" label:"Card title"`
	Description *string `json:"description" form:"description" binding:"omitnil,max=2000" label:"Description"`
	ListID      *int64  `json:"list_id" form:"list_id" binding:"omitnil,gt=0" label:"List ID"`
	DueDate     *string `json:"due_date" form:"due_date" binding:"omitnil,eq=|datetime=2006-01-02" label:"Due date"`
	Priority    *string `json:"priority" form:"priority" binding:"omitnil,eq=|oneof=low medium high" label:"Priority"`
}

type assigneeRequest struct {
	UserID int64 `json:"user_id" form:"user_id" binding:"required,gt=0" label:"User ID"`
}

func priority(raw string) *domain.Priority {
	if raw == "" {
		return nil
	}
	p := domain.Priority(raw)
	return &p
}

func (r updateCardRequest) patch() (domain.CardPatch, error) {
	var p domain.CardPatch
	if r.Title != nil {
		title, err := domain.RequiredText("title", "Card title", *r.Title)
		if err != nil {
			return p, err
		}
		p.Title = &title
	}
	if r.Description != nil {
		desc := strings.TrimSpace(*r.Description)
		p.Description = &desc
	}
	p.ListID = r.ListID
	if r.DueDate != nil {
		due, err := domain.ParseDueDate("due_date", *r.DueDate)
		if err != nil {
			return p, err
		}
		p.DueDate = due
		p.ClearDue = due == nil
	}
	if r.Priority != nil {
		p.Priority = priority(*r.Priority)
		p.ClearPriority = p.Priority == nil
	}
	return p, nil
}

func (h *Handler) CreateCard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	var req createCardRequest
	if !h.bind(c, &req) {
		return
	}
	title, err := domain.RequiredText("title", "Card title", req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	due, err := domain.ParseDueDate("due_date", req.DueDate)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	l, err := h.Lists.GetByID(ctx, req.ListID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, l.BoardID) {
		return
	}

	card := &domain.Card{
		ListID:      l.ID,
		BoardID:     l.BoardID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     due,
		Priority:    priority(req.Priority),
		CreatedBy:   userID,
	}
	if err := h.Cards.Create(ctx, card); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, l.BoardID, &card.ID, userID, domain.ActivityCardCreated,
		fmt.Sprintf("Created card %q in %q", card.Title, l.Title))
	okMessage(c, "Card created", gin.H{"card": card})
}

// GetCard returns the card with labels and assignees.
func (h *Handler) GetCard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}

	card, err := h.Cards.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canView(c, userID, card.BoardID) {
		return
	}
	ok(c, gin.H{"card": card})
}

// UpdateCard patches a card. A new list_id must belong to the same board.
func (h *Handler) UpdateCard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req updateCardRequest
	if !h.bind(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	card, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, card.BoardID) {
		return
	}

	var target *domain.List
	if patch.ListID != nil && *patch.ListID != card.ListID {
		if target, err = h.Lists.GetByID(ctx, *patch.ListID); err != nil {
			h.respondError(c, err)
			return
		}
		if target.BoardID != card.BoardID {
			h.respondError(c, domain.Invalid("list_id", "Cannot move a card to a list on another board"))
			return
		}
	}

	updated, err := h.Cards.Update(ctx, id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if target != nil {
		h.Activity.Log(ctx, card.BoardID, &card.ID, userID, domain.ActivityCardMoved,
			fmt.Sprintf("Moved card %q to %q", updated.Title, target.Title))
	} else {
		h.Activity.Log(ctx, card.BoardID, &card.ID, userID, domain.ActivityCardUpdated,
			fmt.Sprintf("Updated card %q", updated.Title))
	}
	okMessage(c, "Card updated", gin.H{"card": updated})
}

func (h *Handler) DeleteCard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	card, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, card.BoardID) {
		return
	}
	if err := h.Cards.Delete(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	// the card row is gone, so the entry is board-level
	h.Activity.Log(ctx, card.BoardID, nil, userID, domain.ActivityCardDeleted, fmt.Sprintf("Deleted card %q", card.Title))
	okMessage(c, "Card deleted", nil)
}

// AddAssignee assigns a user who can already see the board.
func (h *Handler) AddAssignee(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req assigneeRequest
	if !h.bind(c, &req) {
		return
	}
	ctx := c.Request.Context()

	card, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, card.BoardID) {
		return
	}
	visible, err := h.Access.HasAccessToBoard(ctx, req.UserID, card.BoardID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !visible {
		h.respondError(c, domain.Invalid("user_id", "User does not have access to this board"))
		return
	}

	created, err := h.Cards.AddAssignee(ctx, id, req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if created {
		h.Activity.Log(ctx, card.BoardID, &card.ID, userID, domain.ActivityAssigneeAdded,
			fmt.Sprintf("Assigned user #%d to %q", req.UserID, card.Title))
		h.Notifications.Notify(ctx, userID, &domain.Notification{
			UserID:  req.UserID,
			Type:    domain.NotificationCardAssigned,
			Title:   "Assigned to card",
			Message: fmt.Sprintf("You were assigned to %q", card.Title),
			Link:    "/cards/" + strconv.FormatInt(card.ID, 10),
		})
	}
	okMessage(c, "Assignee added", gin.H{"assigned": true})
}

func (h *Handler) RemoveAssignee(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "card ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	assigneeID, err := pathID(c, "userId", "user ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	card, err := h.Cards.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canEdit(c, userID, card.BoardID) {
		return
	}
	if err := h.Cards.RemoveAssignee(ctx, id, assigneeID); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, card.BoardID, &card.ID, userID, domain.ActivityAssigneeRemoved,
		fmt.Sprintf("Unassigned user #%d from %q", assigneeID, card.Title))
	okMessage(c, "Assignee removed", nil)
}
