package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg))

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest("GET", "/views/counter", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", w.Code)
	}

	got := testutil.ToFloat64(
		globalMetrics.requestsTotal.WithLabelValues("/views/counter", "418"))
	if got != 1 {
		t.Errorf("requests_total{/views/counter,418} = %v, want 1", got)
	}
}

func TestPrometheusDefaultsStatusTo200(t *testing.T) {
	mw := Prometheus()

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No explicit WriteHeader.
		w.Write([]byte("ok"))
	}))

	before := testutil.ToFloat64(
		globalMetrics.requestsTotal.WithLabelValues("/implicit", "200"))

	r := httptest.NewRequest("GET", "/implicit", nil)
	h.ServeHTTP(httptest.NewRecorder(), r)

	after := testutil.ToFloat64(
		globalMetrics.requestsTotal.WithLabelValues("/implicit", "200"))
	if after != before+1 {
		t.Errorf("requests_total{/implicit,200} = %v, want %v", after, before+1)
	}
}

func TestRecordResolveFallback(t *testing.T) {
	Prometheus() // ensure initialized

	before := testutil.ToFloat64(
		globalMetrics.resolveFallbacks.WithLabelValues("/views/counter"))
	RecordResolveFallback("/views/counter")
	after := testutil.ToFloat64(
		globalMetrics.resolveFallbacks.WithLabelValues("/views/counter"))

	if after != before+1 {
		t.Errorf("resolve_fallbacks_total = %v, want %v", after, before+1)
	}
}

func TestRecordBookmarkRedirect(t *testing.T) {
	Prometheus() // ensure initialized

	before := testutil.ToFloat64(globalMetrics.bookmarkRedirects)
	RecordBookmarkRedirect()
	after := testutil.ToFloat64(globalMetrics.bookmarkRedirects)

	if after != before+1 {
		t.Errorf("bookmark_redirects_total = %v, want %v", after, before+1)
	}
}

func TestRecordFunctionsNilSafe(t *testing.T) {
	globalMetricsMu.Lock()
	saved := globalMetrics
	globalMetrics = nil
	globalMetricsMu.Unlock()
	defer func() {
		globalMetricsMu.Lock()
		globalMetrics = saved
		globalMetricsMu.Unlock()
	}()

	// Must not panic when the middleware was never installed.
	RecordBookmarkRedirect()
	RecordResolveFallback("/x")
	RecordCookiesWritten(3)
}
