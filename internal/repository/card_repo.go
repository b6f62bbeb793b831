package repository

import (
	"context"

	"kanban_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardRepository struct {
	db *pgxpool.Pool
}

func NewCardRepository(db *pgxpool.Pool) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `c.id, c.list_id, l.board_id, c.title, c.description, c.due_date, c.priority,
	c.position, c.created_by, c.created_at, c.updated_at`

func scanCard(row pgx.Row) (*domain.Card, error) {
	var c domain.Card
	var priority *string
	if err := row.Scan(&c.ID, &c.ListID, &c.BoardID, &c.Title, &c.Description, &c.DueDate, &priority,
		&c.Position, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	c.Priority = priorityPtr(priority)
	return &c, nil
}

// Create appends c to the end of its list.
func (r *CardRepository) Create(ctx context.Context, c *domain.Card) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO cards (list_id, title, description, due_date, priority, position, created_by)
		VALUES ($1, $2, $3, $4, $5,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM cards WHERE list_id = $1), $6)
		RETURNING id, position, created_at, updated_at`,
		c.ListID, c.Title, c.Description, c.DueDate, priorityArg(c.Priority), c.CreatedBy,
	).Scan(&c.ID, &c.Position, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CardRepository) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	return scanCard(r.db.QueryRow(ctx, `
		SELECT `+cardColumns+`
		FROM cards c
		JOIN lists l ON l.id = c.list_id
		WHERE c.id = $1`, id))
}

// ListByBoard returns every card of a board ordered by list then position.
func (r *CardRepository) ListByBoard(ctx context.Context, boardID int64) ([]domain.Card, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+cardColumns+`
		FROM cards c
		JOIN lists l ON l.id = c.list_id
		WHERE l.board_id = $1
		ORDER BY l.position, c.position, c.id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

// GetDetails loads a card together with its labels and assignees.
func (r *CardRepository) GetDetails(ctx context.Context, id int64) (*domain.Card, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT lb.id, lb.board_id, lb.name, lb.color, lb.created_at
		FROM card_labels cl
		JOIN labels lb ON lb.id = cl.label_id
		WHERE cl.card_id = $1
		ORDER BY lb.name`, id)
	if err != nil {
		return nil, err
	}
	c.Labels = []domain.Label{}
	for rows.Next() {
		var lb domain.Label
		if err := rows.Scan(&lb.ID, &lb.BoardID, &lb.Name, &lb.Color, &lb.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		c.Labels = append(c.Labels, lb)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT u.id, u.name, u.email
		FROM card_assignees ca
		JOIN users u ON u.id = ca.user_id
		WHERE ca.card_id = $1
		ORDER BY ca.assigned_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	c.Assignees = []domain.UserRef{}
	for rows.Next() {
		var u domain.UserRef
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		c.Assignees = append(c.Assignees, u)
	}
	return c, rows.Err()
}

// Update applies patch. Moving to another list appends the card to that list.
func (r *CardRepository) Update(ctx context.Context, id int64, patch domain.CardPatch) (*domain.Card, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE cards SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			position    = CASE WHEN $4::bigint IS NOT NULL AND $4::bigint <> list_id
			                   THEN (SELECT COALESCE(MAX(position), 0) + 1 FROM cards WHERE list_id = $4::bigint)
			                   ELSE position END,
			list_id     = COALESCE($4::bigint, list_id),
			due_date    = CASE WHEN $5 THEN NULL ELSE COALESCE($6::date, due_date) END,
			priority    = CASE WHEN $7 THEN NULL ELSE COALESCE($8::text, priority) END,
			updated_at  = now()
		WHERE id = $1`,
		id, patch.Title, patch.Description, patch.ListID,
		patch.ClearDue, patch.DueDate, patch.ClearPriority, priorityArg(patch.Priority))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddAssignee reports whether a new assignment was created.
func (r *CardRepository) AddAssignee(ctx context.Context, cardID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO card_assignees (card_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, cardID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.Invalid("user_id", "User does not exist")
		}
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CardRepository) RemoveAssignee(ctx context.Context, cardID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM card_assignees WHERE card_id = $1 AND user_id = $2`, cardID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
