package repository

import (
	"context"
	"fmt"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListRepository struct {
	db *pgxpool.Pool
}

func NewListRepository(db *pgxpool.Pool) *ListRepository {
	return &ListRepository{db: db}
}

// Create appends l to its board: position = max(position)+1, or 1 on an empty board.
// The board row is locked for the duration so concurrent creators serialize.
func (r *ListRepository) Create(ctx context.Context, l *domain.List) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var boardID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM boards WHERE id = $1 FOR UPDATE`, l.BoardID).Scan(&boardID); err != nil {
		return notFound(err)
	}

	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM lists WHERE board_id = $1`, l.BoardID,
	).Scan(&l.Position); err != nil {
		return fmt.Errorf("next list position: %w", err)
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO lists (board_id, title, position)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		l.BoardID, l.Title, l.Position,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ListRepository) GetByID(ctx context.Context, id int64) (*domain.List, error) {
	var l domain.List
	err := r.db.QueryRow(ctx,
		`SELECT id, board_id, title, position, created_at, updated_at FROM lists WHERE id = $1`, id,
	).Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *ListRepository) ListByBoard(ctx context.Context, boardID int64) ([]domain.List, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, board_id, title, position, created_at, updated_at
		FROM lists
		WHERE board_id = $1
		ORDER BY position, id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.List{}
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

// Update sets the title and, when position is non-nil, the position.
func (r *ListRepository) Update(ctx context.Context, id int64, title string, position *int) (*domain.List, error) {
	var l domain.List
	err := r.db.QueryRow(ctx, `
		UPDATE lists
		SET title = $2, position = COALESCE($3, position), updated_at = now()
		WHERE id = $1
		RETURNING id, board_id, title, position, created_at, updated_at`,
		id, title, position,
	).Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// Delete removes a list; its cards cascade.
func (r *ListRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
