package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// PortfolioHandler handles valuation HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Summary values the account at current quotes.
//
// Endpoint: GET /api/account/{uuid}/summary
// Response: 200 OK with model.PortfolioSummary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.GetPortfolioSummary(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary)
		return
	}
	response.RespondJSON(w, http.StatusOK, summary)
}

// Holdings returns the open positions with their valuation, in order of first purchase.
//
// Endpoint: GET /api/account/{uuid}/holdings
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.portfolioService.GetHoldings(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetHoldings)
		return
	}
	response.RespondJSON(w, http.StatusOK, holdings)
}

// History returns cash and total value per transaction date.
//
// Endpoint: GET /api/account/{uuid}/history
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.portfolioService.GetPortfolioHistory(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioHistory)
		return
	}
	response.RespondJSON(w, http.StatusOK, history)
}
