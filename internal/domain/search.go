package domain

import "time"

type SearchQuery struct {
	UserID      int64
	Term        string
	WorkspaceID *int64
	BoardID     *int64
}

const (
	SearchLimit      = 15
	SearchMinTermLen = 2
	SearchMaxTermLen = 100
)

// SearchResult is a card hit annotated with its board context.
type SearchResult struct {
	CardID        int64      `json:"id"`
	Hash          string     `json:"hash"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ListID        int64      `json:"list_id"`
	ListTitle     string     `json:"list_title"`
	BoardID       int64      `json:"board_id"`
	BoardName     string     `json:"board_name"`
	WorkspaceID   int64      `json:"workspace_id"`
	WorkspaceName string     `json:"workspace_name"`
	DueDate       *Date      `json:"due_date"`
	Priority      *Priority  `json:"priority"`
	PriorityLabel *string    `json:"priority_label"`
	CreatedAt     time.Time  `json:"created_at"`
}
