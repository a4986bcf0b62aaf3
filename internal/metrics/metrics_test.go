package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

func TestCollector_Registers(t *testing.T) {
	c := NewCollector()
	registry := prometheus.NewRegistry()
	if err := registry.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
}

func TestCollector_ObserveAttendanceSave(t *testing.T) {
	c := NewCollector()

	c.ObserveAttendanceSave(map[models.AttendanceStatus]int{
		models.StatusPresent: 2,
		models.StatusAbsent:  1,
	})
	c.ObserveAttendanceSave(map[models.AttendanceStatus]int{models.StatusPresent: 1})

	if got := testutil.ToFloat64(c.attendanceMarks.WithLabelValues("present")); got != 3 {
		t.Errorf("present marks = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.attendanceMarks.WithLabelValues("absent")); got != 1 {
		t.Errorf("absent marks = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.attendanceBatches); got != 2 {
		t.Errorf("batches = %v, want 2", got)
	}
}

func TestCollector_ObserveRequest(t *testing.T) {
	c := NewCollector()
	c.ObserveRequest("GET", "/api/attendance", 200, 10*time.Millisecond)
	c.ObserveRequest("GET", "", 404, time.Millisecond)

	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/attendance", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveRequest("GET", "/", 200, time.Millisecond)
	c.ObserveAttendanceSave(map[models.AttendanceStatus]int{models.StatusPresent: 1})
}
