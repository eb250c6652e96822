package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stateview-dev/stateview/pkg/registry"
	"github.com/stateview-dev/stateview/pkg/urlbuilder"
	"github.com/stateview-dev/stateview/pkg/viewstate"
)

type counterState struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

func serve(t *testing.T, rec registry.Record, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	rec.Handler(w, r)
	return w
}

func TestComponentResolvesQueryOverCookie(t *testing.T) {
	var got counterState

	rec := Component("counter", "GET", "/views/counter",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			got = state
			return ctx.HTML(200, fmt.Sprintf("count=%d", state.Count))
		})

	r := httptest.NewRequest("GET", "/views/counter?count=7", nil)
	r.AddCookie(&http.Cookie{Name: "count", Value: "3"})
	r.AddCookie(&http.Cookie{Name: "name", Value: "stored"})

	w := serve(t, rec, r)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.Count != 7 {
		t.Errorf("Count = %d, want 7 (query beats cookie)", got.Count)
	}
	if got.Name != "stored" {
		t.Errorf("Name = %q, want %q (cookie beats default)", got.Name, "stored")
	}
	if body := w.Body.String(); body != "count=7" {
		t.Errorf("body = %q, want %q", body, "count=7")
	}
}

func TestComponentPersistsResolvedState(t *testing.T) {
	rec := Component("counter", "GET", "/views/counter",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			ctx.NoContent()
			return nil
		})

	r := httptest.NewRequest("GET", "/views/counter?count=5&name=ada", nil)
	w := serve(t, rec, r)

	cookies := map[string]string{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	if cookies["count"] != "5" {
		t.Errorf("count cookie = %q, want %q", cookies["count"], "5")
	}
	if cookies["name"] != "ada" {
		t.Errorf("name cookie = %q, want %q", cookies["name"], "ada")
	}
}

func TestComponentUnsetClearsCookie(t *testing.T) {
	rec := Component("counter", "GET", "/views/counter",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			if state.Name != "" {
				return fmt.Errorf("name = %q, want cleared", state.Name)
			}
			ctx.NoContent()
			return nil
		})

	r := httptest.NewRequest("GET", "/views/counter?name="+viewstate.Unset, nil)
	r.AddCookie(&http.Cookie{Name: "name", Value: "stale"})

	w := serve(t, rec, r)
	if w.Code != 204 {
		t.Fatalf("status = %d, want 204: %s", w.Code, w.Body.String())
	}

	var deleted bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "name" && c.MaxAge < 0 {
			deleted = true
		}
	}
	if !deleted {
		t.Error("sentinel did not expire the name cookie")
	}
}

func TestComponentURLBuilderSeededFromQuery(t *testing.T) {
	var built, main string

	rec := Component("counter", "GET", "/views/counter",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			built = urls.WithParam("count", state.Count+1).Build()
			main = urls.BuildMainURL()
			ctx.NoContent()
			return nil
		})

	r := httptest.NewRequest("GET", "/views/counter?count=2&name=ada", nil)
	r.Header.Set(HeaderPartial, "true")
	r.Header.Set(HeaderCurrentURL, "http://localhost:8080/dashboard?count=2")

	serve(t, rec, r)

	if built != "/views/counter?count=3&name=ada" {
		t.Errorf("Build() = %q, want %q", built, "/views/counter?count=3&name=ada")
	}
	if main != "/dashboard?count=3&name=ada" {
		t.Errorf("BuildMainURL() = %q, want %q", main, "/dashboard?count=3&name=ada")
	}
}

func TestComponentHandlerErrorMapsToStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"http error", Forbidden("members only"), 403, "members only"},
		{"plain error", fmt.Errorf("boom"), 500, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Component("failing", "GET", "/views/failing",
				func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
					return tt.err
				})

			r := httptest.NewRequest("GET", "/views/failing", nil)
			w := serve(t, rec, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

type denyAll struct{ hydrated bool }

func (d *denyAll) SuppliedBy() StageName { return StageAuthorize }

func (d *denyAll) Hydrate(ctx *Ctx) error {
	d.hydrated = true
	return Unauthorized("login required")
}

func TestComponentInjectableRejection(t *testing.T) {
	handlerRan := false

	rec := Component("private", "GET", "/views/private",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			handlerRan = true
			return nil
		},
		WithInjectable(func() Injectable { return &denyAll{} }))

	r := httptest.NewRequest("GET", "/views/private?count=9", nil)
	w := serve(t, rec, r)

	if w.Code != 401 {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if handlerRan {
		t.Error("handler ran despite authorize rejection")
	}

	// State was persisted before the rejection: persist runs ahead of
	// authorize so a retry after login resumes where the user left off.
	var persisted bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "count" && c.Value == "9" {
			persisted = true
		}
	}
	if !persisted {
		t.Error("resolved state not persisted before authorize stage")
	}
}

type stamp struct{ user string }

func (s *stamp) SuppliedBy() StageName { return StageAuthorize }

func (s *stamp) Hydrate(ctx *Ctx) error {
	s.user = "ada"
	return nil
}

func TestInjectedRetrieval(t *testing.T) {
	var got *stamp
	var ok bool

	rec := Component("stamped", "GET", "/views/stamped",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			got, ok = Injected[*stamp](ctx)
			return nil
		},
		WithInjectable(func() Injectable { return &stamp{} }))

	r := httptest.NewRequest("GET", "/views/stamped", nil)
	serve(t, rec, r)

	if !ok {
		t.Fatal("Injected[*stamp] not found on context")
	}
	if got.user != "ada" {
		t.Errorf("user = %q, want %q", got.user, "ada")
	}
}

func TestComponentDegradedFallbackHook(t *testing.T) {
	var fallbackPath string
	prev := OnResolveFallback
	OnResolveFallback = func(path string) { fallbackPath = path }
	defer func() { OnResolveFallback = prev }()

	var got counterState
	rec := Component("counter", "GET", "/views/counter",
		func(ctx *Ctx, state counterState, urls *urlbuilder.Builder) error {
			got = state
			ctx.NoContent()
			return nil
		})

	r := httptest.NewRequest("GET", "/views/counter?count=notanumber", nil)
	w := serve(t, rec, r)

	if w.Code != 204 {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got.Count != 0 {
		t.Errorf("Count = %d, want 0 after degraded resolution", got.Count)
	}
	if fallbackPath != "/views/counter" {
		t.Errorf("fallback hook got %q, want %q", fallbackPath, "/views/counter")
	}
}
