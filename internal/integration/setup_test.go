package integration

import (
	"context"
	"os"
	"strings"
	"testing"

	"kanban_backend/internal/db"
	"kanban_backend/internal/domain"
	"kanban_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// openDB connects to DATABASE_URL and applies the embedded migrations. Tests
// create their own uniquely named rows and never truncate.
func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err, "connect db")
	t.Cleanup(pool.Close)

	_, err = db.Migrate(context.Background(), pool)
	require.NoError(t, err, "migrate")
	return pool
}

func uniq(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

type seed struct {
	t    *testing.T
	ctx  context.Context
	pool *pgxpool.Pool
}

func newSeed(t *testing.T, pool *pgxpool.Pool) *seed {
	return &seed{t: t, ctx: context.Background(), pool: pool}
}

func (s *seed) user(name string) *domain.User {
	s.t.Helper()
	u := &domain.User{Email: uniq(strings.ToLower(name)) + "@example.com", Name: name, PasswordHash: "x"}
	require.NoError(s.t, repository.NewUserRepository(s.pool).Create(s.ctx, u))
	return u
}

func (s *seed) workspace(owner int64, name string) *domain.Workspace {
	s.t.Helper()
	w := &domain.Workspace{Name: name, OwnerID: owner}
	require.NoError(s.t, repository.NewWorkspaceRepository(s.pool).Create(s.ctx, w))
	return w
}

func (s *seed) board(wsID, creator int64, name string) *domain.Board {
	s.t.Helper()
	b := &domain.Board{WorkspaceID: wsID, Name: name, CreatedBy: creator}
	require.NoError(s.t, repository.NewBoardRepository(s.pool).Create(s.ctx, b))
	return b
}

func (s *seed) list(boardID int64, title string) *domain.List {
	s.t.Helper()
	l := &domain.List{BoardID: boardID, Title: title}
	require.NoError(s.t, repository.NewListRepository(s.pool).Create(s.ctx, l))
	return l
}

func (s *seed) card(l *domain.List, creator int64, title string) *domain.Card {
	s.t.Helper()
	c := &domain.Card{ListID: l.ID, BoardID: l.BoardID, Title: title, CreatedBy: creator}
	require.NoError(s.t, repository.NewCardRepository(s.pool).Create(s.ctx, c))
	return c
}
