package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transfersTotal      *prometheus.CounterVec
	transferDuration    *prometheus.HistogramVec
	transferAmount      prometheus.Histogram
	ledgerCallDuration  *prometheus.HistogramVec
	circuitBreakerState *prometheus.GaugeVec
	denylistSize        prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return NewPrometheusMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWithRegistry registers the collectors on reg instead of the
// process-wide default registry.
func NewPrometheusMetricsWithRegistry(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		transfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfers_total",
				Help: "Total number of transfer requests by terminal state",
			},
			[]string{"status"},
		),
		transferDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transfer_duration_milliseconds",
				Help:    "Transfer request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 15),
			},
			[]string{"result"},
		),
		transferAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_amount_sol",
				Help:    "Submitted transfer amount in SOL",
				Buckets: prometheus.ExponentialBuckets(0.001, 10, 9),
			},
		),
		ledgerCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_call_duration_milliseconds",
				Help:    "Duration of Solana RPC calls in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 15),
			},
			[]string{"method"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		denylistSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "denylist_size",
				Help: "Number of accounts in the transfer denylist",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "transfers_total":
		if status := tags["status"]; status != "" {
			m.transfersTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	ms := float64(duration.Milliseconds())
	switch name {
	case "transfer_duration_success":
		m.transferDuration.WithLabelValues("success").Observe(ms)
	case "transfer_duration_failed":
		m.transferDuration.WithLabelValues("failed").Observe(ms)
	case "ledger.latest_blockhash":
		m.ledgerCallDuration.WithLabelValues("getLatestBlockhash").Observe(ms)
	case "ledger.send_transaction":
		m.ledgerCallDuration.WithLabelValues("sendTransaction").Observe(ms)
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transfer_amount":
		m.transferAmount.Observe(value)
	case "circuit_breaker_state":
		if service := tags["service"]; service != "" {
			m.circuitBreakerState.WithLabelValues(service).Set(value)
		}
	case "denylist_size":
		m.denylistSize.Set(value)
	}
}
