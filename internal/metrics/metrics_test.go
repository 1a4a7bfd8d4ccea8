package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// CollectorはMetricsCollectorインターフェースを満たすことを検証
func TestCollector_ImplementsInterface(t *testing.T) {
	var _ MetricsCollector = (*Collector)(nil)
}

// HTTPリクエストの記録がラベル別にカウントされることを検証
func TestCollector_RecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest(http.MethodGet, "/tasks", 200, 5*time.Millisecond)
	c.RecordHTTPRequest(http.MethodGet, "/tasks", 200, 3*time.Millisecond)
	c.RecordHTTPRequest(http.MethodPost, "/tasks", 401, 1*time.Millisecond)

	got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/tasks", "200"))
	if got != 2 {
		t.Errorf("GET /tasks 200 count = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/tasks", "401"))
	if got != 1 {
		t.Errorf("POST /tasks 401 count = %v, want 1", got)
	}
}

// タスクライフサイクルイベントのカウントを検証
func TestCollector_RecordTaskEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTaskCreated()
	c.RecordTaskCreated()
	c.RecordTaskCompleted()
	c.RecordTaskDeleted()

	if got := testutil.ToFloat64(c.tasksCreated); got != 2 {
		t.Errorf("tasksCreated = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.tasksCompleted); got != 1 {
		t.Errorf("tasksCompleted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.tasksDeleted); got != 1 {
		t.Errorf("tasksDeleted = %v, want 1", got)
	}
}

// /metricsエンドポイントが登録済みメトリクスを公開することを検証
func TestSetupMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTaskCreated()

	handler := SetupMetricsRoute(reg)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "taskman_tasks_created_total 1") {
		t.Errorf("metrics output should contain taskman_tasks_created_total, got:\n%s", rec.Body.String())
	}
}
