package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/league-hub/league-hub/internal/api/http"
	appTrade "github.com/league-hub/league-hub/internal/application/trade"
	"github.com/league-hub/league-hub/internal/config"
	"github.com/league-hub/league-hub/internal/domain/event"
	"github.com/league-hub/league-hub/internal/infrastructure/chat"
	"github.com/league-hub/league-hub/internal/infrastructure/postgres"
	"github.com/league-hub/league-hub/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	tradeRepo := postgres.NewTradeRepository(pool)
	rosterRepo := postgres.NewRosterRepository(pool)
	pickRepo := postgres.NewPickRepository(pool)
	leagueRepo := postgres.NewLeagueRepository(pool)
	idemRepo := postgres.NewIdempotencyRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()
	chatSink := chat.NewSink(&chat.LogMessenger{Logger: logger})
	lockMgr := postgres.NewLockManager(pool, logger)

	// services
	dispatcher := event.NewDispatcher(logger, sseHub, chatSink)
	exchanger := appTrade.NewExchanger(rosterRepo, pickRepo, logger)
	tradeSvc := appTrade.NewService(tradeRepo, rosterRepo, pickRepo, leagueRepo, lockMgr, exchanger, dispatcher, cfg.TradeOfferTTL, logger)

	// API server
	apiServer := httpapi.NewServer(tradeSvc, sseHub, idemRepo, cfg.IdempotencyTTL, cfg.IdempotencyMaxBody, logger)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background sweeps
	go func() {
		ticker := time.NewTicker(cfg.ExpireSweepEvery)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := tradeSvc.ProcessExpiredTrades(context.Background()); err != nil {
				logger.Error().Err(err).Msg("expire sweep failed")
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.ReviewSweepEvery)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := tradeSvc.ProcessReviewCompleteTrades(context.Background()); err != nil {
				logger.Error().Err(err).Msg("review sweep failed")
			}
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
	sseHub.Stop()
}
