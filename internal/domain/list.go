package domain

import "time"

type List struct {
	ID        int64     `db:"id" json:"id"`
	BoardID   int64     `db:"board_id" json:"board_id"`
	Title     string    `db:"title" json:"title"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
