package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sljivkov/pricenode/handler"
	"github.com/sljivkov/pricenode/metrics"
	"github.com/sljivkov/pricenode/pricefeed"
)

// Node polls every registered provider and serves the latest rates
type Node struct {
	registry *pricefeed.Registry
	poller   *pricefeed.Poller
	store    *pricefeed.Store
	server   *http.Server
}

// NewNode wires the poller, store and HTTP server around registry
func NewNode(registry *pricefeed.Registry, listenAddr string, pollTimeout time.Duration) *Node {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := pricefeed.NewStore()

	mux := http.NewServeMux()
	handler.New(store, registry).Register(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &Node{
		registry: registry,
		poller:   pricefeed.NewPoller(registry, metrics.NewPollMetrics(reg), pollTimeout),
		store:    store,
		server: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run blocks until ctx is cancelled, then shuts the HTTP server down. If the
// server fails, polling is stopped before the error is returned.
func (n *Node) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := make(chan pricefeed.Batch)

	go n.poller.Run(ctx, batches)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", n.server.Addr)
		if err := n.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Main loop updates the shared store
	for {
		select {
		case batch, ok := <-batches:
			if !ok {
				return n.shutdown()
			}
			n.store.Apply(batch)
		case err := <-errCh:
			cancel()
			for range batches {
			}
			return fmt.Errorf("http server failed: %w", err)
		}
	}
}

func (n *Node) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("⛔ Shutting down server")

	return n.server.Shutdown(ctx)
}
