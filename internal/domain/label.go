package domain

import "time"

type Label struct {
	ID        int64     `db:"id" json:"id"`
	BoardID   int64     `db:"board_id" json:"board_id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
