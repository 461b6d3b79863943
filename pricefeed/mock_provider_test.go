package pricefeed

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sljivkov/pricenode/domain"
)

// MockProvider implements domain.RateProvider for testing
type MockProvider struct {
	mock.Mock
	name     string
	interval time.Duration
}

func newMockProvider(name string, interval time.Duration) *MockProvider {
	return &MockProvider{name: name, interval: interval}
}

func (m *MockProvider) Code() string { return m.name }

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Interval() time.Duration { return m.interval }

func (m *MockProvider) GetRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)

	rates, _ := args.Get(0).([]domain.ExchangeRate)

	return rates, args.Error(1)
}
