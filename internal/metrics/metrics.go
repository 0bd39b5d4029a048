package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shippertrip_http_requests_total",
		Help: "Total number of HTTP requests by route and status code.",
	},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shippertrip_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route"},
	)

	MatchesComputedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shippertrip_matches_computed_total",
		Help: "Total number of scored candidate pairs, by match type.",
	},
		[]string{"match_type"},
	)

	AlertEvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shippertrip_alert_evaluations_total",
		Help: "Total number of alert evaluations by the background worker, by result.",
	},
		[]string{"result"},
	)

	AlertNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shippertrip_alert_notifications_total",
		Help: "Total number of alert-match notifications created.",
	})

	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shippertrip_emails_sent_total",
		Help: "Total number of emails handed to the provider, by result.",
	},
		[]string{"result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shippertrip_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
