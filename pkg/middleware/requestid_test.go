package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("no request ID in context")
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header = %q, context = %q, want equal", got, seen)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(RequestIDHeader, "upstream-42")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if seen != "upstream-42" {
		t.Errorf("context ID = %q, want %q", seen, "upstream-42")
	}
	if got := w.Header().Get(RequestIDHeader); got != "upstream-42" {
		t.Errorf("response header = %q, want %q", got, "upstream-42")
	}
}

func TestRequestIDFromContextAbsent(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := RequestIDFromContext(r.Context()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", got)
	}
}
