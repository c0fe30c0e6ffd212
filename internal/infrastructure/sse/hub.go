package sse

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/league-hub/league-hub/internal/domain/event"
)

// Message is one frame pushed to a connected client.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one connected subscriber. A client only receives events
// for leagues it subscribed to.
type Client struct {
	ClientID    string
	UserID      int64
	LeagueIDs   []int64
	MessageChan chan *Message

	closeOnce sync.Once
}

func NewClient(clientID string, userID int64, leagueIDs []int64) *Client {
	return &Client{
		ClientID:    clientID,
		UserID:      userID,
		LeagueIDs:   leagueIDs,
		MessageChan: make(chan *Message, 32),
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.MessageChan)
	})
}

func (c *Client) subscribed(leagueID int64) bool {
	for _, id := range c.LeagueIDs {
		if id == leagueID {
			return true
		}
	}
	return false
}

// Hub manages realtime clients and fans committed trade events out to
// league subscribers. It is an event sink: delivery is fire-and-forget
// and slow clients are skipped rather than blocked on.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ClientID] = client
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		c.Close()
		delete(h.clients, clientID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) BroadcastToLeague(leagueID int64, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.subscribed(leagueID) {
			trySend(c, msg)
		}
	}
}

// Name implements event.Sink.
func (h *Hub) Name() string { return "realtime" }

// Deliver implements event.Sink.
func (h *Hub) Deliver(_ context.Context, e event.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	h.BroadcastToLeague(e.LeagueID, &Message{Event: string(e.Type), Data: data})
	return nil
}

func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

func trySend(c *Client, msg *Message) bool {
	select {
	case c.MessageChan <- msg:
		return true
	default:
		return false
	}
}
