// Package pricefeed schedules rate providers and keeps their latest rates
package pricefeed

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sljivkov/pricenode/domain"
)

// ErrDuplicateProvider is returned when a provider name is registered twice
var ErrDuplicateProvider = errors.New("provider already registered")

// Registry maps provider names to providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]domain.RateProvider
}

// NewRegistry creates a registry holding the given providers
func NewRegistry(providers ...domain.RateProvider) (*Registry, error) {
	r := &Registry{providers: make(map[string]domain.RateProvider)}

	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds a provider under its name
func (r *Registry) Register(p domain.RateProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[p.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, p.Name())
	}
	r.providers[p.Name()] = p

	return nil
}

// Get returns the provider registered under name
func (r *Registry) Get(name string) (domain.RateProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	return p, ok
}

// All returns every provider sorted by name
func (r *Registry) All() []domain.RateProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.RateProvider, 0, len(r.providers))
	for _, p := range r.providers {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	return all
}

// Len returns the number of registered providers
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.providers)
}
