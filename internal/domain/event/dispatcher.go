package event

import (
	"context"

	"github.com/rs/zerolog"
)

// Dispatcher fans committed events out to sinks. Sink failures are
// logged and swallowed.
type Dispatcher struct {
	sinks  []Sink
	logger zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:  sinks,
		logger: logger.With().Str("service", "event-dispatcher").Logger(),
	}
}

// Flush drains the buffer and delivers every event to every sink. It
// must only be called after the transaction that produced the events
// has committed.
func (d *Dispatcher) Flush(ctx context.Context, buf *Buffer) {
	if buf == nil {
		return
	}
	for _, e := range buf.Drain() {
		for _, s := range d.sinks {
			if err := s.Deliver(ctx, e); err != nil {
				d.logger.Warn().
					Err(err).
					Str("sink", s.Name()).
					Str("event_type", string(e.Type)).
					Int64("trade_id", e.TradeID).
					Msg("event delivery failed")
			}
		}
	}
}
