package event

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	name   string
	events []Event
	err    error
}

func (s *captureSink) Name() string { return s.name }

func (s *captureSink) Deliver(_ context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func TestBuffer(t *testing.T) {
	buf := NewBuffer()
	assert.Equal(t, 0, buf.Len())

	buf.Append(New(TypeTradeProposed, 1, 10, nil))
	buf.Append(New(TypeTradeCompleted, 1, 10, map[string]interface{}{"k": "v"}))
	assert.Equal(t, 2, buf.Len())

	evs := buf.Drain()
	require.Len(t, evs, 2)
	assert.Equal(t, TypeTradeProposed, evs[0].Type)
	assert.Equal(t, TypeTradeCompleted, evs[1].Type)
	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.Drain())
}

func TestNew(t *testing.T) {
	e := New(TypeTradeVetoed, 3, 17, map[string]interface{}{"vetoes": 4})
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", e.ID.String())
	assert.Equal(t, int64(3), e.LeagueID)
	assert.Equal(t, int64(17), e.TradeID)
	assert.False(t, e.OccurredAt.IsZero())
	assert.JSONEq(t, `{"vetoes":4}`, string(e.Payload))

	// Unmarshalable payloads degrade to null, never fail the mutation.
	bad := New(TypeTradeExpired, 1, 1, map[string]interface{}{"fn": func() {}})
	assert.Nil(t, bad.Payload)
}

func TestDispatcher_Flush(t *testing.T) {
	t.Run("delivers every event to every sink", func(t *testing.T) {
		a := &captureSink{name: "a"}
		b := &captureSink{name: "b"}
		d := NewDispatcher(zerolog.Nop(), a, b)

		buf := NewBuffer()
		buf.Append(New(TypeTradeProposed, 1, 5, nil))
		buf.Append(New(TypeTradeCancelled, 1, 5, nil))
		d.Flush(context.Background(), buf)

		assert.Len(t, a.events, 2)
		assert.Len(t, b.events, 2)
		assert.Equal(t, 0, buf.Len())
	})

	t.Run("a failing sink does not starve the others", func(t *testing.T) {
		failing := &captureSink{name: "failing", err: errors.New("boom")}
		healthy := &captureSink{name: "healthy"}
		d := NewDispatcher(zerolog.Nop(), failing, healthy)

		buf := NewBuffer()
		buf.Append(New(TypeTradeCompleted, 2, 8, nil))
		d.Flush(context.Background(), buf)

		assert.Len(t, failing.events, 1)
		assert.Len(t, healthy.events, 1)
	})

	t.Run("nil buffer is a no-op", func(t *testing.T) {
		d := NewDispatcher(zerolog.Nop())
		d.Flush(context.Background(), nil)
	})
}
