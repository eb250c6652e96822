package persist

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stateview-dev/stateview/pkg/viewstate"
)

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestWriteSetsCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, map[string]string{"count": "7", "query": "widgets"})

	cookies := rec.Result().Cookies()
	count := findCookie(cookies, "count")
	if count == nil {
		t.Fatal("count cookie not set")
	}
	if count.Value != "7" {
		t.Errorf("count value: got %q, want 7", count.Value)
	}
	if count.Path != "/" {
		t.Errorf("count path: got %q, want /", count.Path)
	}

	if findCookie(cookies, "query") == nil {
		t.Error("query cookie not set")
	}
}

func TestWriteDeletesEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, map[string]string{"query": ""})

	c := findCookie(rec.Result().Cookies(), "query")
	if c == nil {
		t.Fatal("expected a deletion cookie for query")
	}
	if c.MaxAge >= 0 {
		t.Errorf("MaxAge: got %d, want negative (deletion)", c.MaxAge)
	}
	if c.Value != "" {
		t.Errorf("Value: got %q, want empty", c.Value)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "count", Value: "5"})

	lookup := FromRequest(r)
	if v, ok := lookup("count"); !ok || v != "5" {
		t.Errorf("lookup(count): got (%q, %v), want (5, true)", v, ok)
	}
	if _, ok := lookup("missing"); ok {
		t.Error("lookup(missing): expected not found")
	}
}

// TestRoundTrip verifies the persistence/resolution idempotency contract:
// resolve, persist, then resolve again from the written cookies with no
// query: the second resolution must equal the first.
func TestRoundTrip(t *testing.T) {
	type state struct {
		Count int    `json:"count"`
		Query string `json:"query"`
	}

	first := viewstate.Resolve[state](
		map[string]string{"count": "7", "query": "widgets"}, nil)

	rec := httptest.NewRecorder()
	Write(rec, first.Values)

	// Replay the written cookies as the next request's jar.
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			next.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}

	second := viewstate.Resolve[state](nil, FromRequest(next))
	if first.State != second.State {
		t.Errorf("round trip: got %+v, want %+v", second.State, first.State)
	}
	for k, v := range first.Values {
		if second.Values[k] != v {
			t.Errorf("Values[%q]: got %q, want %q", k, second.Values[k], v)
		}
	}
}
