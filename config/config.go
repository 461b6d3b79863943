// Package config provides configuration management for the price node
package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sljivkov/pricenode/domain"
)

// DefaultAltcoins is the built-in list of supported altcoins
var DefaultAltcoins = []string{
	"BCH", "DASH", "DCR", "DOGE", "ETC", "ETH", "LTC", "XMR", "ZEC",
}

// Config holds the application configuration
type Config struct {
	PoloniexURL string        `envconfig:"POLONIEX_URL" default:"https://poloniex.com/public"` // Poloniex public API root
	Altcoins    []string      `envconfig:"ALTCOINS"`                                           // Comma-separated supported altcoin codes
	UserAgent   string        `envconfig:"USER_AGENT"`                                         // User-Agent sent to exchanges
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`                         // Exchange HTTP client timeout
	PollTimeout time.Duration `envconfig:"POLL_TIMEOUT" default:"30s"`                         // Deadline of a single provider poll
	ListenAddr  string        `envconfig:"LISTEN_ADDR" default:":8080"`                        // HTTP listen address
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithEnvFile loads configuration from a .env file. It must be passed before
// any option it should take effect for, since variables are read when applied.
func WithEnvFile(path string) Option {
	return func(c *Config) error {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
		if err := envconfig.Process("", c); err != nil {
			return fmt.Errorf("failed to process config: %w", err)
		}
		return nil
	}
}

// WithAltcoins sets the supported altcoins
func WithAltcoins(codes ...string) Option {
	return func(c *Config) error {
		c.Altcoins = codes
		return nil
	}
}

// validate performs validation on the config values
func (c *Config) validate() error {
	if c.PoloniexURL == "" {
		return fmt.Errorf("Poloniex URL is required")
	}
	if _, err := url.ParseRequestURI(c.PoloniexURL); err != nil {
		return fmt.Errorf("invalid Poloniex URL: %s", c.PoloniexURL)
	}

	if len(c.Altcoins) == 0 {
		return fmt.Errorf("no altcoins specified")
	}
	for _, code := range c.Altcoins {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("empty altcoin in list")
		}
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive")
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("poll timeout must be positive")
	}

	return nil
}

// NewConfig creates a new validated Config instance
func NewConfig(opts ...Option) (*Config, error) {
	var cfg Config

	// Process environment variables first
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Apply user options last so they take precedence
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			log.Printf("⚠️ Warning: option application failed: %v", err)
		}
	}

	if len(cfg.Altcoins) == 0 {
		cfg.Altcoins = DefaultAltcoins
	}

	// Validate the configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// AltcoinSet returns the supported altcoins as a currency set
func (c *Config) AltcoinSet() domain.CurrencySet {
	return domain.NewCurrencySet(c.Altcoins...)
}
