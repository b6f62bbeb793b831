package domain

import "time"

// Activity is an append-only audit entry describing a mutation on a board.
type Activity struct {
	ID          int64     `db:"id" json:"id"`
	BoardID     int64     `db:"board_id" json:"board_id"`
	CardID      *int64    `db:"card_id" json:"card_id,omitempty"`
	UserID      int64     `db:"user_id" json:"user_id"`
	UserName    string    `db:"user_name" json:"user_name,omitempty"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Activity types
const (
	ActivityBoardCreated = "board_created"

	ActivityListCreated = "list_created"
	ActivityListUpdated = "list_updated"
	ActivityListDeleted = "list_deleted"

	ActivityCardCreated = "card_created"
	ActivityCardUpdated = "card_updated"
	ActivityCardMoved   = "card_moved"
	ActivityCardDeleted = "card_deleted"

	ActivityLabelCreated = "label_created"
	ActivityLabelUpdated = "label_updated"
	ActivityLabelDeleted = "label_deleted"
	ActivityLabelAdded   = "label_added"
	ActivityLabelRemoved = "label_removed"

	ActivityMemberAdded     = "member_added"
	ActivityAssigneeAdded   = "assignee_added"
	ActivityAssigneeRemoved = "assignee_removed"
)
