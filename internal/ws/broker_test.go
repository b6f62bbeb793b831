package ws

import (
	"context"
	"testing"
	"time"

	"kanban_backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBroker_RelaysAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// two instances sharing one Redis
	hubA, hubB := NewHub(), NewHub()
	rdbA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdbB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdbA.Close()
	defer rdbB.Close()

	brokerA := NewRedisBroker(rdbA, hubA, "")
	brokerB := NewRedisBroker(rdbB, hubB, "")
	require.NoError(t, brokerA.Start(ctx))
	require.NoError(t, brokerB.Start(ctx))

	// a connection on instance B, published from instance A
	c := &Client{UserID: 7, Send: make(chan []byte, 4), hub: hubB}
	hubB.Register(c)
	defer hubB.Unregister(c)

	require.NoError(t, brokerA.Publish(ctx, 7, domain.Event{Type: domain.EventNotification, Data: map[string]string{"title": "hi"}}))

	select {
	case msg := <-c.Send:
		assert.JSONEq(t, `{"type":"notification","data":{"title":"hi"}}`, string(msg))
	case <-time.After(3 * time.Second):
		t.Fatal("message not relayed")
	}
}

func TestRedisBroker_FallsBackToLocal(t *testing.T) {
	mr := miniredis.RunT(t)
	hub := NewHub()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	b := NewRedisBroker(rdb, hub, "")

	c := &Client{UserID: 3, Send: make(chan []byte, 1), hub: hub}
	hub.Register(c)
	defer hub.Unregister(c)

	mr.Close()
	require.NoError(t, b.Publish(context.Background(), 3, domain.Event{Type: domain.EventUnreadCount}))

	select {
	case msg := <-c.Send:
		assert.JSONEq(t, `{"type":"unread_count"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("local fallback not delivered")
	}
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := &Client{UserID: 1, Send: make(chan []byte, 1), hub: hub}
	hub.Register(c)
	defer hub.Unregister(c)

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, 1, domain.Event{Type: "a"}))
	require.NoError(t, hub.Publish(ctx, 1, domain.Event{Type: "b"}))

	assert.Len(t, c.Send, 1)
	assert.Equal(t, 1, hub.Connections(1))
}
