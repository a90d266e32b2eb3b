// Package metrics holds the Prometheus collectors for the request gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "msclient"

// Gateway records request attempts made by the API client. A nil *Gateway
// is valid and records nothing.
type Gateway struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RetriesTotal    *prometheus.CounterVec
	RejectedTotal   prometheus.Counter
}

// NewGateway creates and registers gateway metrics on the given registry.
func NewGateway(reg prometheus.Registerer) *Gateway {
	m := &Gateway{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of API request attempts by endpoint class, method and status.",
		}, []string{"class", "method", "status_code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of API request attempts in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"class", "method"}),
		RetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "retries_total",
			Help:      "Total number of retried API request attempts.",
		}, []string{"class"}),
		RejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "auth_required_total",
			Help:      "Protected calls refused locally because no token was present.",
		}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.RetriesTotal, m.RejectedTotal)
	return m
}

// ObserveAttempt records one finished attempt. status 0 means the request
// never got a response.
func (m *Gateway) ObserveAttempt(class, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(class, method, code).Inc()
	m.RequestDuration.WithLabelValues(class, method).Observe(d.Seconds())
}

func (m *Gateway) ObserveRetry(class string) {
	if m == nil {
		return
	}
	m.RetriesTotal.WithLabelValues(class).Inc()
}

func (m *Gateway) ObserveRejected() {
	if m == nil {
		return
	}
	m.RejectedTotal.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
