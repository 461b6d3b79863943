package pricefeed

import (
	"sort"
	"sync"

	"github.com/sljivkov/pricenode/domain"
)

// Store keeps the latest batch of every provider
type Store struct {
	mu      sync.RWMutex
	batches map[string]Batch
	readyCh chan struct{} // closed once the first batch is applied
	once    sync.Once
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		batches: make(map[string]Batch),
		readyCh: make(chan struct{}),
	}
}

// Apply replaces the provider's previous batch
func (s *Store) Apply(b Batch) {
	s.mu.Lock()
	s.batches[b.Provider] = b
	s.mu.Unlock()

	s.once.Do(func() { close(s.readyCh) })
}

// Ready returns a channel closed after the first batch is applied
func (s *Store) Ready() <-chan struct{} {
	return s.readyCh
}

// Provider returns the latest batch of the named provider
func (s *Store) Provider(name string) (Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[name]
	return b, ok
}

// Rates returns all stored rates sorted by provider, then currency
func (s *Store) Rates() []domain.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rates []domain.ExchangeRate
	for _, b := range s.batches {
		rates = append(rates, b.Rates...)
	}

	sort.Slice(rates, func(i, j int) bool {
		if rates[i].Provider != rates[j].Provider {
			return rates[i].Provider < rates[j].Provider
		}
		return rates[i].Currency < rates[j].Currency
	})

	return rates
}
