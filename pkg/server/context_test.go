package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCtxQueryLastWins(t *testing.T) {
	r := httptest.NewRequest("GET", "/views/counter?count=1&count=2&name=ada", nil)
	ctx := NewCtx(httptest.NewRecorder(), r, nil)

	if got := ctx.QueryParam("count"); got != "2" {
		t.Errorf("QueryParam(count) = %q, want %q", got, "2")
	}
	if got := ctx.QueryParam("name"); got != "ada" {
		t.Errorf("QueryParam(name) = %q, want %q", got, "ada")
	}
	if got := ctx.QueryParam("missing"); got != "" {
		t.Errorf("QueryParam(missing) = %q, want empty", got)
	}
}

func TestCtxIsPartial(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	ctx := NewCtx(httptest.NewRecorder(), r, nil)
	if ctx.IsPartial() {
		t.Error("IsPartial() = true without marker header")
	}

	r.Header.Set(HeaderPartial, "true")
	if !ctx.IsPartial() {
		t.Error("IsPartial() = false with marker header")
	}
}

func TestCtxMainPagePath(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantPath string
		wantOK   bool
	}{
		{"absent", "", "", false},
		{"full url", "http://localhost:8080/dashboard?count=2", "/dashboard", true},
		{"path only", "/reports?page=3", "/reports", true},
		{"root", "http://example.com/", "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/views/x", nil)
			if tt.header != "" {
				r.Header.Set(HeaderCurrentURL, tt.header)
			}
			ctx := NewCtx(httptest.NewRecorder(), r, nil)

			path, ok := ctx.MainPagePath()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
		})
	}
}

func TestCtxPushURL(t *testing.T) {
	w := httptest.NewRecorder()
	ctx := NewCtx(w, httptest.NewRequest("GET", "/", nil), nil)

	ctx.PushURL("/dashboard?count=3")
	if got := w.Header().Get(HeaderPushURL); got != "/dashboard?count=3" {
		t.Errorf("%s = %q, want %q", HeaderPushURL, got, "/dashboard?count=3")
	}
}

func TestCtxHTML(t *testing.T) {
	w := httptest.NewRecorder()
	ctx := NewCtx(w, httptest.NewRequest("GET", "/", nil), nil)

	if err := ctx.HTML(200, "<p>ok</p>"); err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if got := w.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Body.String(); got != "<p>ok</p>" {
		t.Errorf("body = %q, want %q", got, "<p>ok</p>")
	}
}

func TestCtxCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	ctx := NewCtx(httptest.NewRecorder(), r, nil)

	if got, ok := ctx.Cookie("theme"); !ok || got != "dark" {
		t.Errorf("Cookie(theme) = %q, %v, want %q, true", got, ok, "dark")
	}
	if _, ok := ctx.Cookie("absent"); ok {
		t.Error("Cookie(absent) reported present")
	}
}
