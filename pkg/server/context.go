package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/stateview-dev/stateview/pkg/persist"
	"github.com/stateview-dev/stateview/pkg/urlbuilder"
)

// Ctx is the per-request context handed to component handlers. It wraps the
// response writer and request, the request's decoded query parameters, and
// the artifacts the pipeline stages produce. A Ctx is created fresh for each
// request and never shared across requests.
type Ctx struct {
	w      http.ResponseWriter
	r      *http.Request
	logger *slog.Logger

	query  map[string]string
	values map[string]string
	urls   *urlbuilder.Builder

	injected []Injectable
}

// NewCtx builds a Ctx for a request. The query map is decoded once, with
// duplicate keys resolving last-occurrence-wins.
func NewCtx(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *Ctx {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ctx{
		w:      w,
		r:      r,
		logger: logger,
		query:  queryMap(r.URL.Query()),
	}
}

// Request returns the underlying request.
func (c *Ctx) Request() *http.Request { return c.r }

// Writer returns the underlying response writer.
func (c *Ctx) Writer() http.ResponseWriter { return c.w }

// Logger returns the request logger.
func (c *Ctx) Logger() *slog.Logger { return c.logger }

// Method returns the request method.
func (c *Ctx) Method() string { return c.r.Method }

// Path returns the request path.
func (c *Ctx) Path() string { return c.r.URL.Path }

// Query returns the decoded query parameter map (last value wins for
// repeated keys). The map is shared with the pipeline; treat it as
// read-only.
func (c *Ctx) Query() map[string]string { return c.query }

// QueryParam returns a single query parameter, or "" when absent.
func (c *Ctx) QueryParam(name string) string { return c.query[name] }

// Cookie returns the value of the named request cookie.
func (c *Ctx) Cookie(name string) (string, bool) {
	return persist.FromRequest(c.r)(name)
}

// SetCookie adds a Set-Cookie header to the response.
func (c *Ctx) SetCookie(cookie *http.Cookie) {
	http.SetCookie(c.w, cookie)
}

// Values returns the resolved raw scalar map produced by the resolve stage.
// Nil before resolution.
func (c *Ctx) Values() map[string]string { return c.values }

// URL returns the request's URL builder, seeded with the full incoming
// parameter set. Nil before the resolve stage has run.
func (c *Ctx) URL() *urlbuilder.Builder { return c.urls }

// IsPartial reports whether the request is a partial update, identified by
// the progressive-enhancement marker header.
func (c *Ctx) IsPartial() bool {
	return c.r.Header.Get(HeaderPartial) != ""
}

// MainPagePath returns the logical page path from the client's current URL
// header, if the request carries one.
func (c *Ctx) MainPagePath() (string, bool) {
	raw := c.r.Header.Get(HeaderCurrentURL)
	if raw == "" {
		return "", false
	}
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return u.Path, true
	}
	// Malformed value: best effort, strip any query portion.
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" {
		return "", false
	}
	return raw, true
}

// PushURL sets the history-push response header so the client script can
// update the visible address bar without a full navigation.
func (c *Ctx) PushURL(u string) {
	c.w.Header().Set(HeaderPushURL, u)
}

// HTML writes an HTML fragment response.
func (c *Ctx) HTML(status int, markup string) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.w.WriteHeader(status)
	_, err := c.w.Write([]byte(markup))
	return err
}

// Redirect sends a redirect response.
func (c *Ctx) Redirect(location string, code int) {
	http.Redirect(c.w, c.r, location, code)
}

// NoContent writes an empty 204 response.
func (c *Ctx) NoContent() {
	c.w.WriteHeader(http.StatusNoContent)
}

// queryMap flattens parsed url.Values into a last-wins string map.
func queryMap(values url.Values) map[string]string {
	m := make(map[string]string, len(values))
	for key, vals := range values {
		if key == "" || len(vals) == 0 {
			continue
		}
		m[key] = vals[len(vals)-1]
	}
	return m
}
