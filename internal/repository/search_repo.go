package repository

import (
	"context"
	"fmt"

	"kanban_backend/internal/domain"
	"kanban_backend/internal/query"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SearchRepository struct {
	db *pgxpool.Pool
}

func NewSearchRepository(db *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{db: db}
}

// searchStatement renders the card search for q. Visibility mirrors
// HasAccessToBoard: board creator, workspace owner or board member.
func searchStatement(q domain.SearchQuery) (string, []any) {
	pattern := query.Contains(q.Term)

	visible := query.Or(
		query.Eq("b.created_by", q.UserID),
		query.Eq("w.owner_id", q.UserID),
		query.Raw("EXISTS (SELECT 1 FROM board_members bm WHERE bm.board_id = b.id AND bm.user_id = ?)", q.UserID),
	)
	match := query.Or(
		query.ILike("c.title", pattern),
		query.ILike("c.description", pattern),
	)

	b := query.Select(
		"c.id", "c.title", "c.description", "c.due_date", "c.priority", "c.created_at",
		"l.id", "l.title", "b.id", "b.name", "w.id", "w.name",
	).
		From("cards c").
		Join("lists l ON l.id = c.list_id").
		Join("boards b ON b.id = l.board_id").
		Join("workspaces w ON w.id = b.workspace_id").
		Where(visible, match)

	if q.WorkspaceID != nil {
		b.Where(query.Eq("w.id", *q.WorkspaceID))
	}
	if q.BoardID != nil {
		b.Where(query.Eq("b.id", *q.BoardID))
	}

	return b.OrderBy("c.created_at DESC").Limit(domain.SearchLimit).Build()
}

// Search returns the raw matches with stored priorities; callers derive the
// display priority.
func (r *SearchRepository) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	sql, args := searchStatement(q)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	defer rows.Close()

	res := []domain.SearchResult{}
	for rows.Next() {
		var sr domain.SearchResult
		var priority *string
		if err := rows.Scan(&sr.CardID, &sr.Title, &sr.Description, &sr.DueDate, &priority, &sr.CreatedAt,
			&sr.ListID, &sr.ListTitle, &sr.BoardID, &sr.BoardName, &sr.WorkspaceID, &sr.WorkspaceName); err != nil {
			return nil, err
		}
		sr.Priority = priorityPtr(priority)
		res = append(res, sr)
	}
	return res, rows.Err()
}
