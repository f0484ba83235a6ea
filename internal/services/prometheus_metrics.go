package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	groupOperationsTotal   *prometheus.CounterVec
	groupOperationDuration *prometheus.HistogramVec
	authEventsTotal        *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		groupOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "group_operations_total",
				Help: "Total number of group operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		groupOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "group_operation_duration_milliseconds",
				Help:    "Group operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events by status",
			},
			[]string{"status"},
		),
	}
}

// IncrementCounter increments the counter matching the given name
func (m *PrometheusMetrics) IncrementCounter(name string, labels map[string]string) {
	switch name {
	case "group_operation":
		m.groupOperationsTotal.With(prometheus.Labels{
			"operation": labels["operation"],
			"status":    labels["status"],
		}).Inc()
	case "auth_event":
		m.authEventsTotal.With(prometheus.Labels{
			"status": labels["status"],
		}).Inc()
	}
}

// RecordProcessingTime records the duration of an operation
func (m *PrometheusMetrics) RecordProcessingTime(operation string, duration time.Duration) {
	m.groupOperationDuration.With(prometheus.Labels{
		"operation": operation,
	}).Observe(float64(duration.Milliseconds()))
}

// NoopMetrics is a metrics recorder that records nothing, for tests and
// tools that do not expose /metrics
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface {
	return &NoopMetrics{}
}

func (m *NoopMetrics) IncrementCounter(name string, labels map[string]string) {}

func (m *NoopMetrics) RecordProcessingTime(operation string, duration time.Duration) {}
