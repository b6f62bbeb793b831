package domain

import "time"

type Card struct {
	ID          int64      `db:"id" json:"id"`
	ListID      int64      `db:"list_id" json:"list_id"`
	BoardID     int64      `db:"board_id" json:"board_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	DueDate     *Date      `db:"due_date" json:"due_date"`
	Priority    *Priority  `db:"priority" json:"priority"`
	Position    int        `db:"position" json:"position"`
	CreatedBy   int64      `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	Labels    []Label   `json:"labels,omitempty"`
	Assignees []UserRef `json:"assignees,omitempty"`
}

// CardPatch carries the optional fields of a card update.
type CardPatch struct {
	Title         *string
	Description   *string
	ListID        *int64
	DueDate       *Date
	ClearDue      bool
	Priority      *Priority
	ClearPriority bool
}
