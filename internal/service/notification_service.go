package service

import (
	"context"

	"kanban_backend/internal/domain"
	"kanban_backend/internal/logger"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, q domain.NotificationQuery) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Publisher delivers realtime events to a user's open connections.
type Publisher interface {
	Publish(ctx context.Context, userID int64, ev domain.Event) error
}

// NotificationService wraps the store and keeps connected clients' unread
// counters current. Counts are always recomputed from the store.
type NotificationService struct {
	repo NotificationStore
	pub  Publisher
}

func NewNotificationService(repo NotificationStore, pub Publisher) *NotificationService {
	return &NotificationService{repo: repo, pub: pub}
}

// Notify stores a notification for n.UserID unless the actor is notifying
// themselves. Failures are logged and counted, never returned.
func (s *NotificationService) Notify(ctx context.Context, actorID int64, n *domain.Notification) {
	if n.UserID == actorID {
		return
	}
	if err := s.repo.Create(ctx, n); err != nil {
		NotificationFailures.Inc()
		logger.WithContext(ctx).ErrorContext(ctx, "failed to create notification", "error", err, "type", n.Type, "recipient", n.UserID)
		return
	}
	NotificationsCreated.WithLabelValues(n.Type).Inc()

	s.publish(ctx, n.UserID, domain.Event{Type: domain.EventNotification, Data: n})
	if _, err := s.refreshUnread(ctx, n.UserID); err != nil {
		logger.WithContext(ctx).WarnContext(ctx, "unread count refresh failed", "error", err, "recipient", n.UserID)
	}
}

// List returns a page of notifications together with the unread total.
func (s *NotificationService) List(ctx context.Context, q domain.NotificationQuery) ([]domain.Notification, int, error) {
	q = q.Normalize()
	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.UnreadCount(ctx, q.UserID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// MarkAsRead returns the unread count after the change.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID int64) (int, error) {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		return 0, err
	}
	return s.refreshUnread(ctx, userID)
}

// MarkAllAsRead returns how many notifications changed and the new unread count.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, int, error) {
	updated, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	unread, err := s.refreshUnread(ctx, userID)
	return updated, unread, err
}

func (s *NotificationService) Delete(ctx context.Context, id, userID int64) (int, error) {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return 0, err
	}
	return s.refreshUnread(ctx, userID)
}

func (s *NotificationService) refreshUnread(ctx context.Context, userID int64) (int, error) {
	n, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.publish(ctx, userID, domain.Event{Type: domain.EventUnreadCount, Data: map[string]int{"count": n}})
	return n, nil
}

func (s *NotificationService) publish(ctx context.Context, userID int64, ev domain.Event) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, userID, ev); err != nil {
		logger.WithContext(ctx).WarnContext(ctx, "realtime publish failed", "error", err, "recipient", userID, "event", ev.Type)
	}
}
