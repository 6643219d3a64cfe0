package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deltad",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "deltad",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	deltaOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deltad",
			Subsystem: "delta",
			Name:      "operations_total",
			Help:      "Diff and apply operations by outcome.",
		},
		[]string{"op", "outcome"},
	)
	deltaBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deltad",
			Subsystem: "delta",
			Name:      "bytes_processed_total",
			Help:      "Input bytes processed per operation.",
		},
		[]string{"op"},
	)
	deltaDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "deltad",
			Subsystem: "delta",
			Name:      "operation_duration_seconds",
			Help:      "Diff and apply duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, deltaOps, deltaBytes, deltaDuration)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDeltaOp(op string, inputBytes int, duration time.Duration, err error) {
	RegisterMetrics()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	deltaOps.WithLabelValues(op, outcome).Inc()
	deltaBytes.WithLabelValues(op).Add(float64(inputBytes))
	deltaDuration.WithLabelValues(op).Observe(duration.Seconds())
}
