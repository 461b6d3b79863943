// Package metrics exposes Prometheus collectors for provider polling
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the result label of polls_total
const (
	ResultSuccess = "success" // provider returned a batch
	ResultFailure = "failure" // provider returned an error
)

// PollMetrics holds collectors updated on every provider poll
type PollMetrics struct {
	PollsTotal     *prometheus.CounterVec
	PollDuration   *prometheus.HistogramVec
	RatesPublished *prometheus.GaugeVec
}

// NewPollMetrics registers the poll collectors with reg
func NewPollMetrics(reg prometheus.Registerer) *PollMetrics {
	factory := promauto.With(reg)

	return &PollMetrics{
		PollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polls_total",
				Help: "Number of provider polls by result",
			},
			[]string{"provider", "result"},
		),

		PollDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "poll_duration_seconds",
				Help:    "Duration of provider polls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		RatesPublished: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rates_published",
				Help: "Number of rates in the provider's latest batch",
			},
			[]string{"provider"},
		),
	}
}

// ObservePoll records the outcome of one poll
func (m *PollMetrics) ObservePoll(provider string, took time.Duration, rates int, err error) {
	m.PollDuration.WithLabelValues(provider).Observe(took.Seconds())

	if err != nil {
		m.PollsTotal.WithLabelValues(provider, ResultFailure).Inc()
		return
	}

	m.PollsTotal.WithLabelValues(provider, ResultSuccess).Inc()
	m.RatesPublished.WithLabelValues(provider).Set(float64(rates))
}
