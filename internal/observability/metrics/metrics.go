package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GateDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_gate_decisions_total",
			Help: "Outcomes of the pre-render session check.",
		},
		[]string{"decision"},
	)

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_submissions_total",
			Help: "Auth form submissions by form and result.",
		},
		[]string{"form", "result"},
	)

	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_backend_requests_total",
			Help: "Calls to the auth backend by endpoint and status class.",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_backend_request_duration_seconds",
			Help:    "Latency of calls to the auth backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ViewsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_views_active",
			Help: "Visitor views currently held in memory.",
		},
	)
)

// MustRegister registers every collector with a constant service label.
func MustRegister(serviceName string) {
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, prometheus.DefaultRegisterer)
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		GateDecisionsTotal,
		SubmissionsTotal,
		BackendRequestsTotal,
		BackendRequestDurationSeconds,
		ViewsActive,
	)
}
