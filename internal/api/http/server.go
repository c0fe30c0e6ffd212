package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	appTrade "github.com/league-hub/league-hub/internal/application/trade"
	"github.com/league-hub/league-hub/internal/domain/idempotency"
	"github.com/league-hub/league-hub/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers. The handlers are thin
// glue over the trade service; the engine itself is transport
// agnostic.
type Server struct {
	tradeSvc *appTrade.Service
	hub      *sse.Hub
	idem     *IdempotencyMiddleware
	logger   zerolog.Logger
}

func NewServer(tradeSvc *appTrade.Service, hub *sse.Hub, idemRepo idempotency.Repository, idemTTL time.Duration, idemMaxBody int, logger zerolog.Logger) *Server {
	return &Server{
		tradeSvc: tradeSvc,
		hub:      hub,
		idem:     NewIdempotencyMiddleware(idemRepo, idemTTL, idemMaxBody, logger),
		logger:   logger.With().Str("service", "http").Logger(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/leagues/{leagueId}", func(r chi.Router) {
			r.Get("/trades", s.listTrades)
			r.With(s.idem.Handler).Post("/trades", s.proposeTrade)
			r.Get("/events", s.streamEvents)
		})

		r.Route("/trades/{tradeId}", func(r chi.Router) {
			r.Get("/", s.getTrade)
			r.Group(func(r chi.Router) {
				r.Use(s.idem.Handler)
				r.Post("/accept", s.acceptTrade)
				r.Post("/reject", s.rejectTrade)
				r.Post("/cancel", s.cancelTrade)
				r.Post("/counter", s.counterTrade)
				r.Post("/votes", s.voteTrade)
			})
			r.Get("/votes", s.listVotes)
		})
	})

	return r
}
