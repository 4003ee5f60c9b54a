package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// MarketHandler handles quote HTTP requests
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Quotes returns quotes for a comma-separated ticker list. Tickers without a
// quote are omitted.
//
// Endpoint: GET /api/market?tickers=AAPL,MSFT
// Error: 400 Bad Request when tickers is missing or malformed
func (h *MarketHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	tickers, err := validation.ValidateTickers(r.URL.Query().Get("tickers"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid tickers parameter", err.Error())
		return
	}

	quotes, err := h.marketService.GetQuotes(r.Context(), tickers)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveQuotes)
		return
	}
	response.RespondJSON(w, http.StatusOK, quotes)
}

// Refresh re-fetches quotes for every traded ticker.
//
// Endpoint: POST /api/market/refresh
// Response: 200 OK with model.RefreshResult
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.marketService.RefreshTraded(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshQuotes)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}
