package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"kanban_backend/internal/domain"
)

type memNotifications struct {
	mu     sync.Mutex
	seq    int64
	items  []domain.Notification
	failOn string
}

func (m *memNotifications) Create(_ context.Context, n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "create" {
		return errors.New("insert failed")
	}
	m.seq++
	n.ID = m.seq
	n.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) List(_ context.Context, q domain.NotificationQuery) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.Notification
	for _, n := range m.items {
		if n.UserID == q.UserID && (!q.UnreadOnly || !n.IsRead) {
			res = append(res, n)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if q.Offset >= len(res) {
		return []domain.Notification{}, nil
	}
	res = res[q.Offset:]
	if len(res) > q.Limit {
		res = res[:q.Limit]
	}
	return res, nil
}

func (m *memNotifications) UnreadCount(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.items {
		if it.UserID == userID && !it.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memNotifications) MarkAllAsRead(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.items {
		if m.items[i].UserID == userID && !m.items[i].IsRead {
			m.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) Delete(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type published struct {
	userID int64
	ev     domain.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, userID int64, ev domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{userID: userID, ev: ev})
	return nil
}

func (p *recordingPublisher) last() published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type memActivities struct {
	created []domain.Activity
	err     error
	gotArgs []int
}

func (m *memActivities) Create(_ context.Context, a *domain.Activity) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *a)
	return nil
}

func (m *memActivities) ListByBoard(_ context.Context, _ int64, limit, offset int) ([]domain.Activity, error) {
	m.gotArgs = []int{limit, offset}
	return m.created, nil
}

func (m *memActivities) ListByCard(_ context.Context, _ int64, limit int) ([]domain.Activity, error) {
	m.gotArgs = []int{limit}
	return m.created, nil
}

type memUsers struct {
	seq   int64
	users []*domain.User
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	for _, x := range m.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrConflict
		}
	}
	m.seq++
	u.ID = m.seq
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, x := range m.users {
		if strings.EqualFold(x.Email, email) {
			return x, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, x := range m.users {
		if x.ID == id {
			return x, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubSearch struct {
	got     domain.SearchQuery
	results []domain.SearchResult
}

func (s *stubSearch) Search(_ context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	s.got = q
	out := make([]domain.SearchResult, len(s.results))
	copy(out, s.results)
	return out, nil
}
