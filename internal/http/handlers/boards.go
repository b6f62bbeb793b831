package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type boardRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100" label:"Board name"`
	Description string `json:"description" form:"description" binding:"max=2000" label:"Description"`
}

// listView is a list with its cards for the board page.
type listView struct {
	domain.List
	Cards []domain.Card `json:"cards"`
}

// ListWorkspaceBoards returns only the boards the caller can open.
func (h *Handler) ListWorkspaceBoards(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	wsID, err := pathID(c, "id", "workspace ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	allowed, err := h.Access.HasWorkspaceAccess(ctx, userID, wsID)
	if !h.allow(c, allowed, err) {
		return
	}
	boards, err := h.Boards.ListVisible(ctx, userID, wsID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"boards": boards})
}

// CreateBoard requires a non-viewer role in the workspace.
func (h *Handler) CreateBoard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	wsID, err := pathID(c, "id", "workspace ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req boardRequest
	if !h.bind(c, &req) {
		return
	}
	name, err := domain.RequiredText("name", "Board name", req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	desc := strings.TrimSpace(req.Description)
	ctx := c.Request.Context()

	role, member, err := h.Access.WorkspaceRole(ctx, userID, wsID)
	if !h.allow(c, member && role.CanEdit(), err) {
		return
	}

	b := &domain.Board{WorkspaceID: wsID, Name: name, Description: desc, CreatedBy: userID}
	if err := h.Boards.Create(ctx, b); err != nil {
		h.respondError(c, err)
		return
	}
	h.Activity.Log(ctx, b.ID, nil, userID, domain.ActivityBoardCreated, fmt.Sprintf("Created board %q", b.Name))
	okMessage(c, "Board created", gin.H{"board": b})
}

// GetBoard returns the board with its lists, their cards and the board labels.
func (h *Handler) GetBoard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "board ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.canView(c, userID, id) {
		return
	}
	ctx := c.Request.Context()

	b, err := h.Boards.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	lists, err := h.Lists.ListByBoard(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	cards, err := h.Cards.ListByBoard(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	labels, err := h.Labels.ListByBoard(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	byList := make(map[int64][]domain.Card, len(lists))
	for _, card := range cards {
		byList[card.ListID] = append(byList[card.ListID], card)
	}
	views := make([]listView, 0, len(lists))
	for _, l := range lists {
		cs := byList[l.ID]
		if cs == nil {
			cs = []domain.Card{}
		}
		views = append(views, listView{List: l, Cards: cs})
	}

	ok(c, gin.H{"board": b, "lists": views, "labels": labels})
}

// DeleteBoard is allowed to the board creator and the workspace owner.
func (h *Handler) DeleteBoard(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "board ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	allowed, err := h.Access.CanDeleteBoard(ctx, userID, id)
	if !h.allow(c, allowed, err) {
		return
	}
	if err := h.Boards.Delete(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Board deleted", nil)
}

// AddBoardMember lets editors invite new members. Granting admin or changing
// the role of an existing member is reserved to board admins and owners.
func (h *Handler) AddBoardMember(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "board ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req memberRequest
	if !h.bind(c, &req) {
		return
	}
	role := req.role()
	ctx := c.Request.Context()

	actorRole, member, err := h.Access.BoardRole(ctx, userID, id)
	if !h.allow(c, member && actorRole.CanEdit(), err) {
		return
	}
	isAdmin := actorRole == domain.RoleAdmin
	if role == domain.RoleAdmin && !isAdmin {
		forbidden(c)
		return
	}

	b, err := h.Boards.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	m := &domain.BoardMember{BoardID: id, UserID: req.UserID, Role: role}
	if isAdmin {
		err = h.Boards.SetMember(ctx, m)
	} else {
		err = h.Boards.AddMember(ctx, m)
		if errors.Is(err, domain.ErrConflict) {
			forbidden(c)
			return
		}
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Activity.Log(ctx, id, nil, userID, domain.ActivityMemberAdded,
		fmt.Sprintf("Added user #%d as %s", req.UserID, role))
	h.Notifications.Notify(ctx, userID, &domain.Notification{
		UserID:  req.UserID,
		Type:    domain.NotificationBoardInvite,
		Title:   "Added to board",
		Message: fmt.Sprintf("You were added to the board %q", b.Name),
		Link:    "/boards/" + strconv.FormatInt(id, 10),
	})
	okMessage(c, "Member added", gin.H{"member": m})
}
