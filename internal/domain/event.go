package domain

// Event is a realtime message pushed to a user's open connections.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	EventReady        = "ready"
	EventNotification = "notification"
	EventUnreadCount  = "unread_count"
)
