package ws

const (
	// client - server
	MsgPing = "ping"

	// server - client
	MsgPong = "pong"
)

// inbound is the only shape clients may send.
type inbound struct {
	Type string `json:"type"`
}
