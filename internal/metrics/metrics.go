// Package metrics exposes the Prometheus collectors scraped at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	JobsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "repair_jobs_created_total",
		Help: "Repair jobs registered at drop-off",
	})

	JobStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repair_job_status_changes_total",
		Help: "Status transitions, labelled by new status",
	}, []string{"status"})

	SMSSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_sent_total",
		Help: "SMS notifications delivered",
	})

	SMSFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_failed_total",
		Help: "SMS notifications that failed to send",
	})
)
