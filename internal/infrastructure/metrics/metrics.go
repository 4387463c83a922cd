package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RelayMetrics holds the relay's prometheus instruments
type RelayMetrics struct {
	SessionsActive prometheus.Gauge

	MessagesBroadcastTotal prometheus.Counter
	SendFailuresTotal      prometheus.Counter

	ExchangeRequestsTotal   *prometheus.CounterVec
	RateFetchDuration       prometheus.Histogram
	JournalWriteErrorsTotal prometheus.Counter
}

// NewRelayMetrics registers the relay metrics with the default registry
func NewRelayMetrics() *RelayMetrics {
	return NewRelayMetricsWith(prometheus.DefaultRegisterer)
}

// NewRelayMetricsWith registers the relay metrics with the given registerer
func NewRelayMetricsWith(reg prometheus.Registerer) *RelayMetrics {
	factory := promauto.With(reg)

	return &RelayMetrics{
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "relay_sessions_active",
				Help: "Number of currently registered chat sessions",
			},
		),

		MessagesBroadcastTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "relay_messages_broadcast_total",
				Help: "Total messages fanned out to the session set",
			},
		),

		SendFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "relay_send_failures_total",
				Help: "Total per-session send failures during broadcast",
			},
		),

		ExchangeRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_exchange_requests_total",
				Help: "Total exchange commands handled, by outcome",
			},
			[]string{"outcome"},
		),

		RateFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "relay_rate_fetch_duration_seconds",
				Help:    "Duration of full exchange-report builds",
				Buckets: prometheus.DefBuckets,
			},
		),

		JournalWriteErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "relay_journal_write_errors_total",
				Help: "Total failed journal appends",
			},
		),
	}
}
