// Package handler serves the node's rates over HTTP
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sljivkov/pricenode/domain"
	"github.com/sljivkov/pricenode/pricefeed"
)

const defaultReadyTimeout = 3 * time.Second

// RateSource is the read side of the rate store
type RateSource interface {
	Ready() <-chan struct{}
	Rates() []domain.ExchangeRate
}

// MarketPrice is the JSON shape of a single rate
type MarketPrice struct {
	CurrencyCode string  `json:"currencyCode"`
	Price        float64 `json:"price"`
	TimestampSec int64   `json:"timestampSec"`
	Provider     string  `json:"provider"`
}

// MarketPrices is the response of the prices endpoint
type MarketPrices struct {
	Data []MarketPrice `json:"data"`
}

// Handler serves rates and health information
type Handler struct {
	rates        RateSource
	registry     *pricefeed.Registry
	readyTimeout time.Duration
}

// New creates a Handler
func New(rates RateSource, registry *pricefeed.Registry) *Handler {
	return &Handler{
		rates:        rates,
		registry:     registry,
		readyTimeout: defaultReadyTimeout,
	}
}

// Register mounts the handler's routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /getAllMarketPrices", h.Prices)
	mux.HandleFunc("GET /health", h.Health)
}

// Prices writes every stored rate
func (h *Handler) Prices(w http.ResponseWriter, r *http.Request) {
	// Wait until prices are ready
	select {
	case <-h.rates.Ready():
	case <-r.Context().Done():
		return
	case <-time.After(h.readyTimeout):
		http.Error(w, "prices not ready", http.StatusServiceUnavailable)

		return
	}

	rates := h.rates.Rates()
	resp := MarketPrices{Data: make([]MarketPrice, 0, len(rates))}

	for _, rate := range rates {
		resp.Data = append(resp.Data, MarketPrice{
			CurrencyCode: rate.Currency,
			Price:        rate.Price.InexactFloat64(), // clients read prices as JSON numbers

			TimestampSec: rate.Timestamp.Unix(),
			Provider:     rate.Provider,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health reports that the node is up and how many providers it polls
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": h.registry.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
