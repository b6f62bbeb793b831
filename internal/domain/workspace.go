package domain

import "time"

// Workspace is the top-level ownership unit. OwnerID never changes after creation.
type Workspace struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type WorkspaceMember struct {
	WorkspaceID int64     `db:"workspace_id" json:"workspace_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Role        Role      `db:"role" json:"role"`
	JoinedAt    time.Time `db:"joined_at" json:"joined_at"`
}
