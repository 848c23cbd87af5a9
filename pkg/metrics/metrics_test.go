package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCounts(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "api/blog/:id", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "api/blog/:id", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "api/blog/:id", 404, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "api/blog/:id", "200")); got != 2 {
		t.Errorf("200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "api/blog/:id", "404")); got != 1 {
		t.Errorf("404 count = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "api/blog", 200, time.Millisecond)
	if m.Handler() == nil {
		t.Fatal("Handler() = nil")
	}
}
