package pricefeed

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sljivkov/pricenode/domain"
	"github.com/sljivkov/pricenode/metrics"
)

// Batch is the result of one successful poll of a provider
type Batch struct {
	ID        string
	Provider  string
	Rates     []domain.ExchangeRate
	FetchedAt time.Time
}

// Poller invokes every registered provider on its own interval
type Poller struct {
	registry *Registry
	metrics  *metrics.PollMetrics
	timeout  time.Duration
}

// NewPoller creates a poller. Every GetRates call is bounded by timeout.
func NewPoller(registry *Registry, m *metrics.PollMetrics, timeout time.Duration) *Poller {
	return &Poller{
		registry: registry,
		metrics:  m,
		timeout:  timeout,
	}
}

// Run polls all providers until ctx is cancelled. Successful batches are sent
// to out; out is closed once every provider loop has stopped.
func (p *Poller) Run(ctx context.Context, out chan<- Batch) {
	var wg sync.WaitGroup

	for _, provider := range p.registry.All() {
		wg.Add(1)

		go func(provider domain.RateProvider) {
			defer wg.Done()
			p.runProvider(ctx, provider, out)
		}(provider)
	}

	wg.Wait()
	close(out)
}

func (p *Poller) runProvider(ctx context.Context, provider domain.RateProvider, out chan<- Batch) {
	log.Printf("📡 Starting %s rate updates every %s", provider.Name(), provider.Interval())

	ticker := time.NewTicker(provider.Interval())
	defer ticker.Stop()

	for {
		if batch, ok := p.poll(ctx, provider); ok {
			select {
			case out <- batch:
			case <-ctx.Done():
				log.Printf("🛑 Stopping %s rate updates", provider.Name())
				return
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Printf("🛑 Stopping %s rate updates", provider.Name())
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context, provider domain.RateProvider) (Batch, bool) {
	id := uuid.NewString()

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	rates, err := provider.GetRates(callCtx)
	took := time.Since(start)

	if p.metrics != nil {
		p.metrics.ObservePoll(provider.Name(), took, len(rates), err)
	}

	if err != nil {
		log.Printf("❌ [%s] Error fetching %s rates: %v", id, provider.Name(), err)
		return Batch{}, false
	}

	log.Printf("✅ [%s] Fetched %d rates from %s in %s", id, len(rates), provider.Name(), took)

	return Batch{
		ID:        id,
		Provider:  provider.Name(),
		Rates:     rates,
		FetchedAt: start,
	}, true
}
