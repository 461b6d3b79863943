// Package apis provides external exchange rate integrations
package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sljivkov/pricenode/domain"
)

const (
	poloniexCode     = "POLO"
	poloniexName     = "poloniex"
	poloniexInterval = time.Minute

	// DefaultPoloniexURL is the public API root of Poloniex
	DefaultPoloniexURL = "https://poloniex.com/public"
)

// Poloniex implements domain.RateProvider using the Poloniex returnTicker endpoint
type Poloniex struct {
	baseURL   string
	userAgent string
	altcoins  domain.CurrencySet
	client    *http.Client
	now       func() time.Time
}

// PoloniexOption configures a Poloniex provider
type PoloniexOption func(*Poloniex)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(client *http.Client) PoloniexOption {
	return func(p *Poloniex) {
		p.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(userAgent string) PoloniexOption {
	return func(p *Poloniex) {
		p.userAgent = userAgent
	}
}

// WithClock sets the clock used to stamp rates
func WithClock(now func() time.Time) PoloniexOption {
	return func(p *Poloniex) {
		p.now = now
	}
}

// poloniexMarketData is one value of the returnTicker map. Only last is
// read, and only for pairs that pass the filters.
type poloniexMarketData struct {
	Last json.RawMessage `json:"last"`
}

type poloniexTicker struct {
	pair domain.CurrencyPair
	data poloniexMarketData
}

// NewPoloniex creates a new Poloniex provider. Only BTC pairs whose counter
// currency is in altcoins are reported.
func NewPoloniex(baseURL string, altcoins domain.CurrencySet, opts ...PoloniexOption) *Poloniex {
	p := &Poloniex{
		baseURL:  baseURL,
		altcoins: altcoins,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Code returns the provider code
func (p *Poloniex) Code() string { return poloniexCode }

// Name returns the provider name
func (p *Poloniex) Name() string { return poloniexName }

// Interval returns the polling interval
func (p *Poloniex) Interval() time.Duration { return poloniexInterval }

// GetRates fetches the ticker map and returns one rate per supported altcoin
// quoted against BTC
func (p *Poloniex) GetRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	// Poloniex tickers carry no timestamp of their own
	timestamp := p.now()

	tickers, err := p.getTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, poloniexName, err)
	}

	seen := make(map[string]struct{}, len(tickers))
	rates := make([]domain.ExchangeRate, 0, p.altcoins.Len())

	for _, t := range tickers {
		if t.pair.Base != domain.BTC {
			continue
		}
		if !p.altcoins.Contains(t.pair.Counter) {
			continue
		}
		if _, dup := seen[t.pair.Counter]; dup {
			continue
		}

		var last decimal.Decimal
		if err := last.UnmarshalJSON(t.data.Last); err != nil {
			return nil, fmt.Errorf("%w: %s: invalid last price for %s: %w", domain.ErrDataUnavailable, poloniexName, t.pair, err)
		}
		seen[t.pair.Counter] = struct{}{}

		rates = append(rates, domain.NewExchangeRate(t.pair.Counter, last, timestamp, p.Name()))
	}

	return rates, nil
}

// getTickers fetches the full ticker map and pairs every entry with its parsed
// currency pair. Entries whose symbol is not BASE_COUNTER are skipped.
func (p *Poloniex) getTickers(ctx context.Context) ([]poloniexTicker, error) {
	raw, err := p.getTickerMap(ctx)
	if err != nil {
		return nil, err
	}

	tickers := make([]poloniexTicker, 0, len(raw))

	for symbol, data := range raw {
		pair, err := domain.ParseCurrencyPair(symbol)
		if err != nil {
			log.Printf("⚠️ Skipping %s ticker: %v", poloniexName, err)
			continue
		}

		tickers = append(tickers, poloniexTicker{pair: pair, data: data})
	}

	return tickers, nil
}

func (p *Poloniex) getTickerMap(ctx context.Context) (map[string]poloniexMarketData, error) {
	params := url.Values{}
	params.Add("command", "returnTicker")

	fullURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// An empty value suppresses the default Go User-Agent
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickers: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API returned non-2xx status: %d", resp.StatusCode)
	}

	var raw map[string]poloniexMarketData
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return raw, nil
}
