// Package domain defines core interfaces and types for the price node
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDataUnavailable is returned by providers when rates could not be fetched or decoded
var ErrDataUnavailable = errors.New("exchange rate data unavailable")

// ExchangeRate is the price of one BTC expressed in Currency
type ExchangeRate struct {
	Currency  string          // Counter currency code (e.g. "LTC", "XMR")
	Price     decimal.Decimal // Last traded price
	Timestamp time.Time       // Shared by every rate of one poll cycle
	Provider  string          // Name of the provider that produced the rate
}

// NewExchangeRate creates an ExchangeRate
func NewExchangeRate(currency string, price decimal.Decimal, timestamp time.Time, provider string) ExchangeRate {
	return ExchangeRate{
		Currency:  currency,
		Price:     price,
		Timestamp: timestamp,
		Provider:  provider,
	}
}

// Equal reports whether two rates carry the same values
func (r ExchangeRate) Equal(other ExchangeRate) bool {
	return r.Currency == other.Currency &&
		r.Price.Equal(other.Price) &&
		r.Timestamp.Equal(other.Timestamp) &&
		r.Provider == other.Provider
}

// RateProvider defines the interface for exchanges that provide BTC rates
type RateProvider interface {
	// Code returns the short provider code (e.g. "POLO")
	Code() string

	// Name returns the provider name stamped on every rate it produces
	Name() string

	// Interval returns how often the provider should be polled
	Interval() time.Duration

	// GetRates fetches the current rates. Either a complete batch or an error
	// wrapping ErrDataUnavailable is returned.
	GetRates(ctx context.Context) ([]ExchangeRate, error)
}
