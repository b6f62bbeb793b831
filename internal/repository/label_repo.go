package repository

import (
	"context"
	"fmt"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LabelRepository struct {
	db *pgxpool.Pool
}

func NewLabelRepository(db *pgxpool.Pool) *LabelRepository {
	return &LabelRepository{db: db}
}

func (r *LabelRepository) Create(ctx context.Context, l *domain.Label) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO labels (board_id, name, color)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		l.BoardID, l.Name, l.Color,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *LabelRepository) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	var l domain.Label
	err := r.db.QueryRow(ctx,
		`SELECT id, board_id, name, color, created_at FROM labels WHERE id = $1`, id,
	).Scan(&l.ID, &l.BoardID, &l.Name, &l.Color, &l.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *LabelRepository) ListByBoard(ctx context.Context, boardID int64) ([]domain.Label, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, board_id, name, color, created_at
		FROM labels
		WHERE board_id = $1
		ORDER BY name, id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Label{}
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color, &l.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *LabelRepository) Update(ctx context.Context, id int64, name, color string) (*domain.Label, error) {
	var l domain.Label
	err := r.db.QueryRow(ctx, `
		UPDATE labels SET name = $2, color = $3
		WHERE id = $1
		RETURNING id, board_id, name, color, created_at`, id, name, color,
	).Scan(&l.ID, &l.BoardID, &l.Name, &l.Color, &l.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// Delete removes the label; card associations cascade.
func (r *LabelRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Toggle flips the association between a card and a label and reports
// whether the label is attached afterwards. Toggles on the same card are
// serialized by a lock on the card row.
func (r *LabelRepository) Toggle(ctx context.Context, cardID, labelID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM cards WHERE id = $1 FOR UPDATE`, cardID).Scan(&locked); err != nil {
		return false, notFound(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM card_labels WHERE card_id = $1 AND label_id = $2`, cardID, labelID)
	if err != nil {
		return false, fmt.Errorf("detach label: %w", err)
	}
	attached := false
	if tag.RowsAffected() == 0 {
		tag, err = tx.Exec(ctx, `
			INSERT INTO card_labels (card_id, label_id) VALUES ($1, $2)
			ON CONFLICT (card_id, label_id) DO NOTHING`, cardID, labelID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return false, domain.ErrNotFound
			}
			return false, fmt.Errorf("attach label: %w", err)
		}
		attached = tag.RowsAffected() == 1
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return attached, nil
}
