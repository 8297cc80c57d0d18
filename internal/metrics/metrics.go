package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/erzhanov/jobtrack/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "jobtrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobtrack",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	AuthAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobtrack",
		Name:      "auth_attempts_total",
		Help:      "Register/login attempts, by operation and outcome.",
	}, []string{"operation", "outcome"})

	// Digest metrics

	DigestCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jobtrack",
		Name:      "digest_cycle_duration_seconds",
		Help:      "Time taken for one digest delivery cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	DigestEmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobtrack",
		Name:      "digest_emails_total",
		Help:      "Digest emails attempted, by outcome.",
	}, []string{"outcome"})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthAttemptsTotal,
		DigestCycleDuration,
		DigestEmailsTotal,
	)
}

// NewServer exposes Prometheus metrics and the health endpoints on the
// operational port, away from the public API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()), http.StatusOK)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, result, status)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
