package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sljivkov/pricenode/apis"
	"github.com/sljivkov/pricenode/config"
	"github.com/sljivkov/pricenode/pricefeed"
)

func main() {
	var opts []config.Option
	if _, err := os.Stat(".env"); err == nil {
		opts = append(opts, config.WithEnvFile(".env"))
	}

	cfg, err := config.NewConfig(opts...)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	poloniex := apis.NewPoloniex(
		cfg.PoloniexURL,
		cfg.AltcoinSet(),
		apis.WithUserAgent(cfg.UserAgent),
		apis.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	registry, err := pricefeed.NewRegistry(poloniex)
	if err != nil {
		log.Fatalf("failed to register providers: %v", err)
	}

	log.Printf("Polling %d providers for %v", registry.Len(), cfg.AltcoinSet().Codes())

	node := NewNode(registry, cfg.ListenAddr, cfg.PollTimeout)
	if err := node.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("node stopped: %v", err)
	}
}
