// Package chat bridges committed trade events into league chat system
// messages. The chat service itself is an external collaborator; this
// package only formats and forwards.
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/league-hub/league-hub/internal/domain/event"
)

// SystemMessenger posts system messages into a league's chat. Fire and
// forget: implementations must not block on delivery.
type SystemMessenger interface {
	PostSystemMessage(ctx context.Context, leagueID int64, text string) error
}

// LogMessenger is the stand-in messenger used until the chat service
// is wired; it records the message instead of delivering it.
type LogMessenger struct {
	Logger zerolog.Logger
}

func (m *LogMessenger) PostSystemMessage(_ context.Context, leagueID int64, text string) error {
	m.Logger.Info().Int64("league_id", leagueID).Str("text", text).Msg("league chat system message")
	return nil
}

// Sink adapts a SystemMessenger into an event sink, honoring the
// trade's delivery preferences.
type Sink struct {
	messenger SystemMessenger
}

func NewSink(messenger SystemMessenger) *Sink {
	return &Sink{messenger: messenger}
}

func (s *Sink) Name() string { return "league-chat" }

func (s *Sink) Deliver(ctx context.Context, e event.Event) error {
	text, ok := formatMessage(e)
	if !ok {
		return nil
	}
	return s.messenger.PostSystemMessage(ctx, e.LeagueID, text)
}

func formatMessage(e event.Event) (string, bool) {
	var prefs struct {
		NotifyLeagueChat bool   `json:"notifyLeagueChat"`
		LeagueChatMode   string `json:"leagueChatMode"`
		Message          string `json:"message"`
	}
	if len(e.Payload) > 0 {
		_ = json.Unmarshal(e.Payload, &prefs)
	}

	switch e.Type {
	case event.TypeTradeProposed:
		if !prefs.NotifyLeagueChat || prefs.LeagueChatMode == "SILENT" {
			return "", false
		}
		return fmt.Sprintf("A new trade was proposed (trade #%d).", e.TradeID), true
	case event.TypeTradeCompleted:
		return fmt.Sprintf("Trade #%d has been completed.", e.TradeID), true
	case event.TypeTradeVetoed:
		return fmt.Sprintf("Trade #%d was vetoed by league vote.", e.TradeID), true
	case event.TypeTradeReviewStarted:
		return fmt.Sprintf("Trade #%d was accepted and is now under league review.", e.TradeID), true
	default:
		return "", false
	}
}
