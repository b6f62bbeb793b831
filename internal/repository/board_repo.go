package repository

import (
	"context"
	"errors"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BoardRepository struct {
	db *pgxpool.Pool
}

func NewBoardRepository(db *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, b *domain.Board) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO boards (workspace_id, name, description, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		b.WorkspaceID, b.Name, b.Description, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *BoardRepository) GetByID(ctx context.Context, id int64) (*domain.Board, error) {
	var b domain.Board
	err := r.db.QueryRow(ctx,
		`SELECT id, workspace_id, name, description, created_by, created_at
		 FROM boards WHERE id = $1`, id,
	).Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Description, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListVisible returns the workspace's boards the user can open.
func (r *BoardRepository) ListVisible(ctx context.Context, userID, workspaceID int64) ([]domain.Board, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.workspace_id, b.name, b.description, b.created_by, b.created_at
		FROM boards b
		JOIN workspaces w ON w.id = b.workspace_id
		WHERE b.workspace_id = $1
		  AND (b.created_by = $2
		       OR w.owner_id = $2
		       OR EXISTS (SELECT 1 FROM board_members bm WHERE bm.board_id = b.id AND bm.user_id = $2))
		ORDER BY b.created_at`, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Description, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

// Delete removes a board; lists, cards, labels and activity cascade.
func (r *BoardRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddMember inserts a membership and returns domain.ErrConflict when the
// user is already a member. Existing roles are left untouched.
func (r *BoardRepository) AddMember(ctx context.Context, m *domain.BoardMember) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO board_members (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO NOTHING
		RETURNING joined_at`, m.BoardID, m.UserID, string(m.Role)).Scan(&m.JoinedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrConflict
	case isForeignKeyViolation(err):
		return domain.Invalid("user_id", "User does not exist")
	}
	return err
}

// SetMember inserts a membership or replaces the role of an existing one.
func (r *BoardRepository) SetMember(ctx context.Context, m *domain.BoardMember) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO board_members (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING joined_at`, m.BoardID, m.UserID, string(m.Role)).Scan(&m.JoinedAt)
	if isForeignKeyViolation(err) {
		return domain.Invalid("user_id", "User does not exist")
	}
	return err
}
