package ws

import (
	"context"
	"encoding/json"
	"time"

	"kanban_backend/internal/domain"
	"kanban_backend/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const DefaultChannel = "kanban:notifications"

type envelope struct {
	UserID int64           `json:"user_id"`
	Event  json.RawMessage `json:"event"`
}

// RedisBroker fans events out to every instance through a Redis channel.
// Each instance delivers what it receives to its own Hub.
type RedisBroker struct {
	rdb     *redis.Client
	hub     *Hub
	channel string
}

func NewRedisBroker(rdb *redis.Client, hub *Hub, channel string) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{rdb: rdb, hub: hub, channel: channel}
}

// Publish falls back to local delivery when Redis rejects the message.
func (b *RedisBroker) Publish(ctx context.Context, userID int64, ev domain.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{UserID: userID, Event: raw})
	if err != nil {
		return err
	}

	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		logger.Warn("redis publish failed, delivering locally", "error", err)
		b.hub.deliver(userID, raw)
	}
	return nil
}

// Start confirms the subscription, then relays messages in the background
// until ctx is cancelled.
func (b *RedisBroker) Start(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)

	rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := sub.Receive(rctx); err != nil {
		_ = sub.Close()
		return err
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					logger.Warn("malformed broker message", "error", err)
					continue
				}
				b.hub.deliver(env.UserID, env.Event)
			}
		}
	}()

	return nil
}
