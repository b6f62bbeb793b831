package service

import (
	"context"

	"kanban_backend/internal/domain"
	"kanban_backend/internal/logger"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

type ActivityStore interface {
	Create(ctx context.Context, a *domain.Activity) error
	ListByBoard(ctx context.Context, boardID int64, limit, offset int) ([]domain.Activity, error)
	ListByCard(ctx context.Context, cardID int64, limit int) ([]domain.Activity, error)
}

// ActivityService records board history
type ActivityService struct {
	repo ActivityStore
}

// NewActivityService creates a new activity service
func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo}
}

// Log appends an activity entry. Failures are logged and counted, never returned.
func (s *ActivityService) Log(ctx context.Context, boardID int64, cardID *int64, userID int64, activityType, description string) {
	a := &domain.Activity{
		BoardID:     boardID,
		CardID:      cardID,
		UserID:      userID,
		Type:        activityType,
		Description: description,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		ActivityLogFailures.Inc()
		logger.WithContext(ctx).ErrorContext(ctx, "failed to create activity", "error", err, "type", activityType, "board_id", boardID)
	}
}

// BoardActivity returns a page of a board's history
func (s *ActivityService) BoardActivity(ctx context.Context, boardID int64, limit, offset int) ([]domain.Activity, error) {
	return s.repo.ListByBoard(ctx, boardID, clampLimit(limit, DefaultActivityLimit, MaxActivityLimit), max(offset, 0))
}

// CardActivity returns the most recent entries for a card
func (s *ActivityService) CardActivity(ctx context.Context, cardID int64, limit int) ([]domain.Activity, error) {
	return s.repo.ListByCard(ctx, cardID, clampLimit(limit, DefaultActivityLimit, MaxActivityLimit))
}

func clampLimit(n, def, ceiling int) int {
	if n <= 0 {
		return def
	}
	return min(n, ceiling)
}
