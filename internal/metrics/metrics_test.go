package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

func TestMetrics_ObserveExchange(t *testing.T) {
	m := New()
	m.ObserveExchange("", 10*time.Millisecond)
	m.ObserveExchange(core.KindValidation, time.Millisecond)
	m.ObserveExchange(core.KindValidation, time.Millisecond)

	if got := testutil.ToFloat64(m.exchanges.WithLabelValues("success", "")); got != 1 {
		t.Errorf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.exchanges.WithLabelValues("failure", "validation")); got != 2 {
		t.Errorf("validation failure count = %v, want 2", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/auth", http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `mndpauth_http_requests_total{method="GET",path="/auth",status="200"} 1`) {
		t.Errorf("exposition misses request counter:\n%s", body)
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	// must not panic
	m.ObserveExchange(core.KindTransport, time.Second)
	m.ObserveRequest(http.MethodGet, "/auth", http.StatusOK)
}
