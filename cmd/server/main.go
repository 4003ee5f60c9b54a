package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

const quoteRefreshTimeout = 2 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(appLog)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to migrate database")
	}

	appLog.Info().
		Str("path", cfg.Database.Path).
		Str("version", version.Version).
		Msg("Connected to database")

	provider, err := market.NewProvider(cfg.Market.Source)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to create quote provider")
	}

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// Create services
	marketService := service.NewMarketService(
		provider,
		quoteRepo,
		transactionRepo,
		cfg.Market.FetchConcurrency,
		appLog,
	)
	services := api.Services{
		System:  service.NewSystemService(db, provider.Name()),
		Account: service.NewAccountService(accountRepo, transactionRepo),
		Transaction: service.NewTransactionService(
			accountRepo,
			transactionRepo,
			marketService,
			appLog,
		),
		Portfolio: service.NewPortfolioService(accountRepo, transactionRepo, marketService),
		Market:    marketService,
	}

	// Background quote refresh
	sched := scheduler.New(appLog)
	if cfg.Market.RefreshSchedule != "" {
		job := scheduler.NewQuoteRefreshJob(marketService, quoteRefreshTimeout)
		if err := sched.AddJob(cfg.Market.RefreshSchedule, job); err != nil {
			appLog.Fatal().Err(err).Str("schedule", cfg.Market.RefreshSchedule).Msg("Invalid quote refresh schedule")
		}
	}
	sched.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(services, cfg, appLog),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLog.Info().Str("addr", cfg.Server.Addr).Str("quote_source", provider.Name()).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error().Err(err).Msg("Server forced to shutdown")
	}
	sched.Stop()

	appLog.Info().Msg("Server exited")
}
