package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const workspaceDeniedMessage = "Workspace not found or access denied"

type workspaceRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100" label:"Workspace name"`
	Description string `json:"description" form:"description" binding:"max=2000" label:"Description"`
}

type memberRequest struct {
	UserID int64  `json:"user_id" form:"user_id" binding:"required,gt=0" label:"User ID"`
	Role   string `json:"role" form:"role" binding:"omitempty,oneof=admin member viewer" label:"Role"`
}

func (r workspaceRequest) trimmed() (string, string, error) {
	name, err := domain.RequiredText("name", "Workspace name", r.Name)
	if err != nil {
		return "", "", err
	}
	return name, strings.TrimSpace(r.Description), nil
}

// role defaults to member.
func (r memberRequest) role() domain.Role {
	if r.Role == "" {
		return domain.RoleMember
	}
	return domain.Role(r.Role)
}

func (h *Handler) ListWorkspaces(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}

	workspaces, err := h.Workspaces.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"workspaces": workspaces})
}

// CreateWorkspace makes the caller the owner of a new workspace.
func (h *Handler) CreateWorkspace(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	var req workspaceRequest
	if !h.bind(c, &req) {
		return
	}
	name, desc, err := req.trimmed()
	if err != nil {
		h.respondError(c, err)
		return
	}

	w := &domain.Workspace{Name: name, Description: desc, OwnerID: userID}
	if err := h.Workspaces.Create(c.Request.Context(), w); err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Workspace created", gin.H{"workspace": w})
}

func (h *Handler) GetWorkspace(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "workspace ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	role, member, err := h.Access.WorkspaceRole(ctx, userID, id)
	if !h.allow(c, member, err) {
		return
	}
	w, err := h.Workspaces.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	members, err := h.Workspaces.ListMembers(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"workspace": w, "members": members, "role": role})
}

// UpdateWorkspace changes name and description. owner_id is never taken from the request.
func (h *Handler) UpdateWorkspace(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "workspace ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req workspaceRequest
	if !h.bind(c, &req) {
		return
	}
	name, desc, err := req.trimmed()
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	allowed, err := h.Access.CanManageWorkspace(ctx, userID, id)
	if !h.allow(c, allowed, err) {
		return
	}
	w, err := h.Workspaces.Update(ctx, id, name, desc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Workspace updated", gin.H{"workspace": w})
}

// DeleteWorkspace is owner-only. Missing and foreign workspaces get the same 403.
func (h *Handler) DeleteWorkspace(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "workspace ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	owner, err := h.Access.IsWorkspaceOwner(ctx, userID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !owner {
		fail(c, http.StatusForbidden, workspaceDeniedMessage)
		return
	}

	if err := h.Workspaces.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fail(c, http.StatusForbidden, workspaceDeniedMessage)
			return
		}
		h.respondError(c, err)
		return
	}
	okMessage(c, "Workspace deleted", nil)
}

func (h *Handler) AddWorkspaceMember(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "workspace ID")
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

	allowed, err := h.Access.CanManageWorkspace(ctx, userID, id)
	if !h.allow(c, allowed, err) {
		return
	}
	w, err := h.Workspaces.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if req.UserID == w.OwnerID {
		h.respondError(c, domain.Invalid("user_id", "User is already the workspace owner"))
		return
	}

	m := &domain.WorkspaceMember{WorkspaceID: id, UserID: req.UserID, Role: role}
	if err := h.Workspaces.AddMember(ctx, m); err != nil {
		h.respondError(c, err)
		return
	}

	h.Notifications.Notify(ctx, userID, &domain.Notification{
		UserID:  req.UserID,
		Type:    domain.NotificationWorkspaceInvite,
		Title:   "Added to workspace",
		Message: fmt.Sprintf("You were added to the workspace %q", w.Name),
		Link:    "/workspaces/" + strconv.FormatInt(id, 10),
	})
	okMessage(c, "Member added", gin.H{"member": m})
}

// RemoveWorkspaceMember never removes the owner, who has no membership row.
func (h *Handler) RemoveWorkspaceMember(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "workspace ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	memberID, err := pathID(c, "userId", "user ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	allowed, err := h.Access.CanManageWorkspace(ctx, userID, id)
	if !h.allow(c, allowed, err) {
		return
	}
	owner, err := h.Access.IsWorkspaceOwner(ctx, memberID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if owner {
		h.respondError(c, domain.Invalid("userId", "The workspace owner cannot be removed"))
		return
	}

	if err := h.Workspaces.RemoveMember(ctx, id, memberID); err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Member removed", nil)
}
