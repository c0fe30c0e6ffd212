package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type identifies a kind of domain event.
type Type string

const (
	TypeTradeProposed      Type = "trade.proposed"
	TypeTradeCompleted     Type = "trade.completed"
	TypeTradeRejected      Type = "trade.rejected"
	TypeTradeCancelled     Type = "trade.cancelled"
	TypeTradeCountered     Type = "trade.countered"
	TypeTradeReviewStarted Type = "trade.review_started"
	TypeTradeVoteCast      Type = "trade.vote_cast"
	TypeTradeVetoed        Type = "trade.vetoed"
	TypeTradeExpired       Type = "trade.expired"
	TypeAssetMoved         Type = "trade.asset_moved"
)

// Event is a fact about a committed state change. Events are buffered
// during the transaction that produces them and dispatched to
// subscribers only after commit.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       Type            `json:"type"`
	LeagueID   int64           `json:"leagueId"`
	TradeID    int64           `json:"tradeId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// New builds an event with a fresh id and timestamp. Payload values
// that fail to marshal are carried as null rather than failing the
// business operation.
func New(t Type, leagueID, tradeID int64, payload interface{}) Event {
	var raw json.RawMessage
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			raw = b
		}
	}
	return Event{
		ID:         uuid.New(),
		Type:       t,
		LeagueID:   leagueID,
		TradeID:    tradeID,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}
}

// Buffer is a transaction-scoped event accumulator. It is created per
// operation and threaded explicitly through the lock-protected block;
// the caller flushes it strictly after commit and discards it on
// rollback. Not safe for concurrent use; each operation owns its own.
type Buffer struct {
	events []Event
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Append(e Event) {
	b.events = append(b.events, e)
}

func (b *Buffer) Len() int {
	return len(b.events)
}

// Drain returns the buffered events and empties the buffer.
func (b *Buffer) Drain() []Event {
	evs := b.events
	b.events = nil
	return evs
}

// Sink receives committed events. Sinks are fire-and-forget: a failing
// sink must never affect the business mutation that produced the
// event.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, e Event) error
}
