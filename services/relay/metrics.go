package relay

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusRelaySync     prometheus.Histogram
	prometheusRelayBatches  prometheus.Counter
	prometheusRelayHeaders  prometheus.Counter
	prometheusRelayRejected prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusRelaySync = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "headerchain",
			Subsystem: "relay",
			Name:      "sync",
			Help:      "Duration of relay sync rounds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		},
	)

	prometheusRelayBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "relay",
			Name:      "batches",
			Help:      "Number of header batches accepted by the header chain service",
		},
	)

	prometheusRelayHeaders = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "relay",
			Name:      "headers",
			Help:      "Number of headers accepted by the header chain service",
		},
	)

	prometheusRelayRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "relay",
			Name:      "rejected",
			Help:      "Number of header batches rejected by the header chain service",
		},
	)
}
