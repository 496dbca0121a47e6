package http_impl

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusHTTPRequests *prometheus.CounterVec
	prometheusHTTPErrors   *prometheus.CounterVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusHTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "http",
			Name:      "requests",
			Help:      "Number of API requests by endpoint",
		},
		[]string{"endpoint"},
	)

	prometheusHTTPErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "headerchain",
			Subsystem: "http",
			Name:      "errors",
			Help:      "Number of API error responses by error code",
		},
		[]string{"code"},
	)
}
