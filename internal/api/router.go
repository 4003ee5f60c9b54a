package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// Services are the dependencies of the router.
type Services struct {
	System      *service.SystemService
	Account     *service.AccountService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Market      *service.MarketService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svc.Account)
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)

			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.Account)
				r.Get("/transactions", transactionHandler.Transactions)
				r.Post("/transactions", transactionHandler.CreateTransaction)
				r.Post("/deposit", transactionHandler.Deposit)
				r.Post("/withdraw", transactionHandler.Withdraw)
				r.Get("/audit", transactionHandler.Audit)
				r.Get("/holdings", portfolioHandler.Holdings)
				r.Get("/summary", portfolioHandler.Summary)
				r.Get("/history", portfolioHandler.History)
			})
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svc.Market)
			r.Get("/", marketHandler.Quotes)
			r.Post("/refresh", marketHandler.Refresh)
		})
	})

	return r
}
