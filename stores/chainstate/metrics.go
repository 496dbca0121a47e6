package chainstate

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusChainStateLoad   prometheus.Histogram
	prometheusChainStateSave   prometheus.Histogram
	prometheusChainStateErrors *prometheus.CounterVec
	prometheusMetricsInitOnce  sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusChainStateLoad = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "headerchain",
			Subsystem: "chainstate",
			Name:      "load",
			Help:      "Duration of chain state loads",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	prometheusChainStateSave = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "headerchain",
			Subsystem: "chainstate",
			Name:      "save",
			Help:      "Duration of chain state saves",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	prometheusChainStateErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "chainstate",
			Name:      "errors",
			Help:      "Number of failed chain state operations by operation and error code",
		},
		[]string{"operation", "code"},
	)
}
