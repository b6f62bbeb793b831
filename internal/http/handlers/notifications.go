package handlers

import (
	"kanban_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Every notification handler acts on the caller's own notifications only.

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	q := domain.NotificationQuery{
		UserID:     userID,
		Limit:      queryInt(c, "limit", domain.DefaultNotificationLimit),
		Offset:     queryInt(c, "offset", 0),
		UnreadOnly: c.Query("unread_only") == "true" || c.Query("unread_only") == "1",
	}

	items, unread, err := h.Notifications.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"notifications": items, "unread_count": unread})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	n, err := h.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, gin.H{"unread_count": n})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "notification ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	n, err := h.Notifications.MarkAsRead(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Notification marked as read", gin.H{"unread_count": n})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	updated, n, err := h.Notifications.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "All notifications marked as read", gin.H{"updated": updated, "unread_count": n})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	userID, found := caller(c)
	if !found {
		return
	}
	id, err := pathID(c, "id", "notification ID")
	if err != nil {
		h.respondError(c, err)
		return
	}
	n, err := h.Notifications.Delete(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	okMessage(c, "Notification deleted", gin.H{"unread_count": n})
}
