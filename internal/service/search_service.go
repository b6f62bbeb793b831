package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kanban_backend/internal/domain"
)

type SearchStore interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
}

type SearchService struct {
	repo SearchStore
	ids  *IDCodec
	now  func() time.Time
}

func NewSearchService(repo SearchStore, ids *IDCodec) *SearchService {
	return &SearchService{repo: repo, ids: ids, now: time.Now}
}

// Search finds cards visible to q.UserID and replaces each stored priority
// with one derived from the due date. Nothing is written back.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	q.Term = strings.TrimSpace(q.Term)
	switch n := utf8.RuneCountInString(q.Term); {
	case n < domain.SearchMinTermLen:
		return nil, domain.Invalid("q", fmt.Sprintf("Search query must be at least %d characters", domain.SearchMinTermLen))
	case n > domain.SearchMaxTermLen:
		return nil, domain.Invalid("q", fmt.Sprintf("Search query must be at most %d characters", domain.SearchMaxTermLen))
	}

	results, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range results {
		r := &results[i]
		r.Priority = domain.DerivePriority(r.DueDate, now)
		r.PriorityLabel = nil
		if r.Priority != nil {
			label := r.Priority.Label()
			r.PriorityLabel = &label
		}
		if s.ids != nil {
			r.Hash = s.ids.Encode(r.CardID)
		}
	}
	return results, nil
}
