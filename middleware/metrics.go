package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tanayvk/conduit/pipeline"
	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// Metrics enumerates the request metrics collected by the pipeline.
type Metrics struct {
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the request metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conduit_requests_total",
				Help: "Count of handled requests by method and status code.",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conduit_request_duration_seconds",
				Help:    "Time taken to traverse the pipeline and handle the request.",
				Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 10},
			},
			[]string{"method"},
		),
	}
	prometheus.MustRegister(m.RequestCount, m.RequestDuration)
	return m
}

// Unregister removes the metrics from the default Prometheus registry.
func (m *Metrics) Unregister() {
	prometheus.Unregister(m.RequestCount)
	prometheus.Unregister(m.RequestDuration)
}

// Middleware returns a stage that observes every request passing through.
func (m *Metrics) Middleware() pipeline.Middleware {
	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			start := time.Now()
			resp := next(r)

			m.RequestCount.
				WithLabelValues(string(r.Method), strconv.Itoa(int(resp.GetStatusCode()))).
				Inc()
			m.RequestDuration.
				WithLabelValues(string(r.Method)).
				Observe(time.Since(start).Seconds())

			return resp
		}
	}
}

// ListenAndServe exposes /metrics for scraping on its own listener. It blocks
// and is meant to be run on a separate goroutine.
func ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("metrics endpoint listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}
