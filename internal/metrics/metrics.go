package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biogen",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests, labeled by route and status.",
	}, []string{"route", "status"})

	// RequestDurationSeconds is handler latency by route.
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "biogen",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, labeled by route.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"route"})

	// GenerationDurationSeconds is time spent inside the generation backend.
	GenerationDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "biogen",
		Subsystem: "generator",
		Name:      "duration_seconds",
		Help:      "Time spent in the generation backend, labeled by backend and result.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120},
	}, []string{"backend", "result"})

	// WebSocketConnections is the number of open /ws/generate-bio sockets.
	WebSocketConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "biogen",
		Subsystem: "ws",
		Name:      "connections",
		Help:      "Current number of open bio WebSocket connections.",
	})
)

// Register registers the service metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestDurationSeconds,
			GenerationDurationSeconds,
			WebSocketConnections,
		)
	})
}
