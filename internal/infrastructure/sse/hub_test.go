package sse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/league-hub/league-hub/internal/domain/event"
)

func TestHub_Deliver(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	subscribed := NewClient("a", 1, []int64{10})
	other := NewClient("b", 2, []int64{20})
	hub.Register(subscribed)
	hub.Register(other)
	require.Equal(t, 2, hub.ClientCount())

	err := hub.Deliver(context.Background(), event.New(event.TypeTradeCompleted, 10, 5, nil))
	require.NoError(t, err)

	select {
	case msg := <-subscribed.MessageChan:
		assert.Equal(t, string(event.TypeTradeCompleted), msg.Event)
	default:
		t.Fatal("subscribed client received nothing")
	}
	select {
	case <-other.MessageChan:
		t.Fatal("client in another league must not receive the event")
	default:
	}
}

func TestHub_SlowClientIsSkipped(t *testing.T) {
	hub := NewHub()
	defer hub.Stop()

	slow := NewClient("slow", 1, []int64{10})
	hub.Register(slow)

	// Fill the buffer; further sends must drop, not block.
	for i := 0; i < cap(slow.MessageChan)+5; i++ {
		hub.BroadcastToLeague(10, &Message{Event: "x"})
	}
	assert.Equal(t, cap(slow.MessageChan), len(slow.MessageChan))
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	c := NewClient("a", 1, []int64{10})
	hub.Register(c)
	hub.Unregister("a")
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-c.MessageChan
	assert.False(t, open, "unregister closes the channel")

	// Unregistering twice is safe.
	hub.Unregister("a")
}
