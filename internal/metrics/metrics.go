// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

const metricsNamespace = "attendance_service"

// Collector is a prometheus.Collector for HTTP traffic and attendance writes.
// A nil *Collector is valid and records nothing.
type Collector struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	attendanceMarks   *prometheus.CounterVec
	attendanceBatches prometheus.Counter
}

func NewCollector() *Collector {
	return &Collector{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "The number of HTTP requests handled.",
			}, []string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "The time taken to handle an HTTP request.",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			}, []string{"method", "route"},
		),
		attendanceMarks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "attendance_marks_total",
				Help:      "The number of attendance records written.",
			}, []string{"status"},
		),
		attendanceBatches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "attendance_saves_total",
				Help:      "The number of committed attendance save batches.",
			},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.httpRequests.Describe(ch)
	c.httpDuration.Describe(ch)
	c.attendanceMarks.Describe(ch)
	c.attendanceBatches.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.httpRequests.Collect(ch)
	c.httpDuration.Collect(ch)
	c.attendanceMarks.Collect(ch)
	c.attendanceBatches.Collect(ch)
}

func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAttendanceSave counts one committed batch and its rows by status.
func (c *Collector) ObserveAttendanceSave(counts map[models.AttendanceStatus]int) {
	if c == nil {
		return
	}
	c.attendanceBatches.Inc()
	for status, n := range counts {
		c.attendanceMarks.WithLabelValues(string(status)).Add(float64(n))
	}
}
