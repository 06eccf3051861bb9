package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var RemindersFiredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pillulu_reminders_fired_total",
		Help: "Total number of notifications created by the reminder evaluator",
	},
	[]string{"type"},
)

var EvaluationRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pillulu_evaluation_runs_total",
		Help: "Total number of reminder evaluation runs",
	},
	[]string{"trigger", "status"},
)

var EvaluationDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "pillulu_evaluation_duration_seconds",
		Help:    "Duration of reminder evaluation runs in seconds",
		Buckets: prometheus.DefBuckets,
	},
)

var NotificationDeliveriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pillulu_notification_deliveries_total",
		Help: "Total number of notification deliveries attempted per channel",
	},
	[]string{"channel", "status"},
)

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var once sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RemindersFiredTotal,
			EvaluationRunsTotal,
			EvaluationDuration,
			NotificationDeliveriesTotal,
			HttpRequestsTotal,
			HttpRequestDuration,
		)
	})
}
