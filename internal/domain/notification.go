package domain

import "time"

// Notification belongs to exactly one user. IsRead only ever moves from false to true.
type Notification struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	Type      string     `db:"type" json:"type"`
	Title     string     `db:"title" json:"title"`
	Message   string     `db:"message" json:"message"`
	Link      string     `db:"link" json:"link,omitempty"`
	IsRead    bool       `db:"is_read" json:"is_read"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	ReadAt    *time.Time `db:"read_at" json:"read_at,omitempty"`
}

const (
	NotificationWorkspaceInvite = "workspace_invite"
	NotificationBoardInvite     = "board_invite"
	NotificationCardAssigned    = "card_assigned"
)

// NotificationQuery selects a page of a user's notifications.
type NotificationQuery struct {
	UserID     int64
	Limit      int
	Offset     int
	UnreadOnly bool
}

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

// Normalize clamps paging values into their allowed ranges.
func (q NotificationQuery) Normalize() NotificationQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultNotificationLimit
	}
	if q.Limit > MaxNotificationLimit {
		q.Limit = MaxNotificationLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
