package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/stateview-dev/stateview/pkg/server"
)

// defaultDenylist names cookies that never belong in a URL. Matching is
// case-insensitive against the cookie name.
var defaultDenylist = []string{
	"token",
	"session",
	"session_id",
	"sessionid",
	"csrf",
	"csrf_token",
	"auth",
	"auth_token",
	"jwt",
	"bearer",
	"id",
}

// StateURLsConfig configures the bookmark redirect middleware.
type StateURLsConfig struct {
	// Denylist holds cookie names that must never be reflected into a URL.
	// Defaults to a list of common credential and session cookie names;
	// WithDenylist appends to it, WithDenylistOnly replaces it.
	Denylist []string
}

// StateURLsOption configures the bookmark redirect middleware.
type StateURLsOption func(*StateURLsConfig)

// WithDenylist appends cookie names to the default denylist.
func WithDenylist(names ...string) StateURLsOption {
	return func(c *StateURLsConfig) {
		c.Denylist = append(c.Denylist, names...)
	}
}

// WithDenylistOnly replaces the default denylist entirely. Use with care:
// the defaults exist so session and credential cookies never leak into
// shareable URLs.
func WithDenylistOnly(names ...string) StateURLsOption {
	return func(c *StateURLsConfig) {
		c.Denylist = append([]string{}, names...)
	}
}

// StateURLs creates middleware that restores persisted view state into the
// URL on bookmark-style navigation. When a full page request arrives with an
// empty query string but the client carries state cookies, the middleware
// answers 303 See Other to the same path with the cookie state expanded into
// query parameters. The client re-requests with the state visible in the
// address bar, so the resulting page is bookmarkable and shareable.
//
// The middleware stands aside when:
//   - the method is not GET
//   - the request is a partial update (progressive-enhancement header set)
//   - the query string is non-empty (the URL already names its state)
//   - no non-denylisted cookies are present
//
// Denylisted cookie names (sessions, tokens, CSRF) are never reflected.
func StateURLs(opts ...StateURLsOption) func(http.Handler) http.Handler {
	config := StateURLsConfig{
		Denylist: append([]string{}, defaultDenylist...),
	}
	for _, opt := range opts {
		opt(&config)
	}

	denied := make(map[string]bool, len(config.Denylist))
	for _, name := range config.Denylist {
		denied[strings.ToLower(name)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet ||
				r.Header.Get(server.HeaderPartial) != "" ||
				r.URL.RawQuery != "" {
				next.ServeHTTP(w, r)
				return
			}

			params := url.Values{}
			for _, c := range r.Cookies() {
				if c.Value == "" || denied[strings.ToLower(c.Name)] {
					continue
				}
				params.Set(c.Name, c.Value)
			}
			if len(params) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			RecordBookmarkRedirect()
			http.Redirect(w, r, r.URL.Path+"?"+params.Encode(), http.StatusSeeOther)
		})
	}
}
