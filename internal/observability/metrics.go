package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	apiRequestsTotal    *prometheus.CounterVec
	apiLatencySeconds   *prometheus.HistogramVec
	apiErrorsTotal      *prometheus.CounterVec
	emailsEnqueuedTotal *prometheus.CounterVec
	remindersSweptTotal *prometheus.CounterVec
	feedClientsActive   prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors for the HR API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireflow_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hireflow_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireflow_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		emailsEnqueuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireflow_emails_enqueued_total",
			Help: "Outbound emails placed on the mail queue, by template.",
		}, []string{"template"})

		remindersSweptTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireflow_reminders_swept_total",
			Help: "Reminder sweep executions, by sweep kind and outcome.",
		}, []string{"kind", "outcome"})

		feedClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hireflow_feed_clients_active",
			Help: "Number of websocket event feed subscribers.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			emailsEnqueuedTotal,
			remindersSweptTotal,
			feedClientsActive,
		)
	})
}

// APIRequests exposes the request counter.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the error counter.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// EmailsEnqueued exposes the mail queue counter.
func EmailsEnqueued() *prometheus.CounterVec {
	RegisterMetrics()
	return emailsEnqueuedTotal
}

// RemindersSwept exposes the reminder sweep counter.
func RemindersSwept() *prometheus.CounterVec {
	RegisterMetrics()
	return remindersSweptTotal
}

// FeedClientsActive exposes the websocket subscriber gauge.
func FeedClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return feedClientsActive
}
