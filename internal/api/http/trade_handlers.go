package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	appTrade "github.com/league-hub/league-hub/internal/application/trade"
	"github.com/league-hub/league-hub/internal/domain/apperr"
	"github.com/league-hub/league-hub/internal/domain/trade"
	"github.com/league-hub/league-hub/internal/infrastructure/sse"
)

func (s *Server) proposeTrade(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid league id"))
		return
	}
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req appTrade.ProposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperr.Validation("invalid request body"))
		return
	}
	t, err := s.tradeSvc.ProposeTrade(r.Context(), leagueID, userID, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) listTrades(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid league id"))
		return
	}
	var status *trade.Status
	if v := r.URL.Query().Get("status"); v != "" {
		st := trade.Status(v)
		status = &st
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	trades, err := s.tradeSvc.GetTradesForLeague(r.Context(), leagueID, status, limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"trades": trades})
}

func (s *Server) getTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathID(r, "tradeId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid trade id"))
		return
	}
	t, err := s.tradeSvc.GetTradeByID(r.Context(), tradeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) acceptTrade(w http.ResponseWriter, r *http.Request) {
	s.lifecycle(w, r, s.tradeSvc.AcceptTrade)
}

func (s *Server) rejectTrade(w http.ResponseWriter, r *http.Request) {
	s.lifecycle(w, r, s.tradeSvc.RejectTrade)
}

func (s *Server) cancelTrade(w http.ResponseWriter, r *http.Request) {
	s.lifecycle(w, r, s.tradeSvc.CancelTrade)
}

func (s *Server) lifecycle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, tradeID, userID int64) (*trade.Trade, error)) {
	tradeID, err := pathID(r, "tradeId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid trade id"))
		return
	}
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	t, err := op(r.Context(), tradeID, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) counterTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathID(r, "tradeId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid trade id"))
		return
	}
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req struct {
		appTrade.ProposeRequest
		IdempotencyKey *string `json:"idempotencyKey,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperr.Validation("invalid request body"))
		return
	}
	t, err := s.tradeSvc.CounterTrade(r.Context(), tradeID, userID, req.ProposeRequest, req.IdempotencyKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) voteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathID(r, "tradeId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid trade id"))
		return
	}
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req struct {
		Vote trade.VoteChoice `json:"vote"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperr.Validation("invalid request body"))
		return
	}
	result, err := s.tradeSvc.VoteTrade(r.Context(), tradeID, userID, req.Vote)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) listVotes(w http.ResponseWriter, r *http.Request) {
	tradeID, err := pathID(r, "tradeId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid trade id"))
		return
	}
	votes, err := s.tradeSvc.ListVotes(r.Context(), tradeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"votes": votes})
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueId")
	if err != nil {
		s.writeError(w, apperr.Validation("invalid league id"))
		return
	}
	userID, err := requestUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, apperr.Validation("streaming unsupported"))
		return
	}

	client := sse.NewClient(uuid.NewString(), userID, []int64{leagueID})
	s.hub.Register(client)
	defer s.hub.Unregister(client.ClientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-client.MessageChan:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
