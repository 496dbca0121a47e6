package headerchain

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusHeaderChainInitialize        prometheus.Counter
	prometheusHeaderChainUpdate            prometheus.Counter
	prometheusHeaderChainUpdateAccepted    prometheus.Counter
	prometheusHeaderChainUpdateRejected    *prometheus.CounterVec
	prometheusHeaderChainHeadersAccepted   prometheus.Counter
	prometheusHeaderChainValidate          prometheus.Histogram
	prometheusHeaderChainGetContractInfo   prometheus.Counter
	prometheusHeaderChainCurrentOffset     prometheus.Gauge
	prometheusHeaderChainDigestCacheLength prometheus.GaugeFunc
)

var (
	prometheusMetricsInitOnce sync.Once
	digestCacheGaugeInitOnce  sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusHeaderChainInitialize = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "initialize",
			Help:      "Number of Initialize calls",
		},
	)

	prometheusHeaderChainUpdate = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "update",
			Help:      "Number of UpdateBlockOffset calls",
		},
	)

	prometheusHeaderChainUpdateAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "update_accepted",
			Help:      "Number of header batches accepted",
		},
	)

	prometheusHeaderChainUpdateRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "update_rejected",
			Help:      "Number of header batches rejected, by error code",
		},
		[]string{"code"},
	)

	prometheusHeaderChainHeadersAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "headers_accepted",
			Help:      "Number of block headers appended to the chain",
		},
	)

	prometheusHeaderChainValidate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "validate",
			Help:      "Duration of header batch validation",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16),
		},
	)

	prometheusHeaderChainGetContractInfo = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "get_contract_info",
			Help:      "Number of GetContractInfo calls",
		},
	)

	prometheusHeaderChainCurrentOffset = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "headerchain",
			Subsystem: "service",
			Name:      "current_offset",
			Help:      "Number of headers accepted since the start block",
		},
	)
}

// registerDigestCacheGauge exposes the size of the first server's digest cache.
func registerDigestCacheGauge(cache *DigestCache) {
	if cache == nil {
		return
	}

	digestCacheGaugeInitOnce.Do(func() {
		prometheusHeaderChainDigestCacheLength = promauto.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "headerchain",
				Subsystem: "service",
				Name:      "digest_cache_length",
				Help:      "Number of header digests held in the cache",
			},
			func() float64 {
				return float64(cache.Len())
			},
		)
	})
}
