package repository

import (
	"context"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository handles activity log database operations
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity entry
func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO activities (board_id, card_id, user_id, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.BoardID, a.CardID, a.UserID, a.Type, a.Description).Scan(&a.ID, &a.CreatedAt)
}

// ListByBoard returns a board's activity, newest first
func (r *ActivityRepository) ListByBoard(ctx context.Context, boardID int64, limit, offset int) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.board_id, a.card_id, a.user_id, u.name, a.type, a.description, a.created_at
		FROM activities a
		JOIN users u ON u.id = a.user_id
		WHERE a.board_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2 OFFSET $3
	`, boardID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListByCard returns a card's activity, newest first
func (r *ActivityRepository) ListByCard(ctx context.Context, cardID int64, limit int) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.board_id, a.card_id, a.user_id, u.name, a.type, a.description, a.created_at
		FROM activities a
		JOIN users u ON u.id = a.user_id
		WHERE a.card_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2
	`, cardID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

func scanActivities(rows pgx.Rows) ([]domain.Activity, error) {
	res := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.BoardID, &a.CardID, &a.UserID, &a.UserName, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
