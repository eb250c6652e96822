// Package urlbuilder composes request URLs for components.
//
// A Builder is seeded with the full incoming parameter set, not just one
// component's fields, so that a link updating one component's state never
// erases a sibling component's parameters. It produces two kinds of URLs:
// the target URL a partial update fetches (Build) and the logical page URL
// pushed into the browser's address bar (BuildMainURL / BuildPageURL).
package urlbuilder

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Builder accumulates a base path and a parameter map.
// Builders are request-scoped and not safe for concurrent use.
type Builder struct {
	path     string
	params   map[string]string
	mainPage string
}

// New creates a Builder for basePath, seeded from a raw query string.
// Parsing splits on '&', then once on '='; pairs with empty keys are
// dropped; duplicate keys resolve last-occurrence-wins. The query string is
// expected to be already percent-decoded by the surrounding HTTP layer.
func New(basePath, queryString string) *Builder {
	return &Builder{
		path:   basePath,
		params: parseQueryString(queryString),
	}
}

// FromValues creates a Builder seeded from parsed url.Values (as produced by
// r.URL.Query()). For repeated keys the last value wins.
func FromValues(basePath string, values url.Values) *Builder {
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if key == "" || len(vals) == 0 {
			continue
		}
		params[key] = vals[len(vals)-1]
	}
	return &Builder{path: basePath, params: params}
}

// Clone returns an independent copy of the builder.
func (b *Builder) Clone() *Builder {
	params := make(map[string]string, len(b.params))
	for k, v := range b.params {
		params[k] = v
	}
	return &Builder{path: b.path, params: params, mainPage: b.mainPage}
}

// WithMainPage records the logical page path used for browser-history URLs,
// independent of the builder's base path.
func (b *Builder) WithMainPage(path string) *Builder {
	b.mainPage = path
	return b
}

// WithParam overlays a single key/value pair onto the parameter map.
// The value is stringified; later writes win regardless of source.
func (b *Builder) WithParam(key string, value any) *Builder {
	b.params[key] = formatValue(value)
	return b
}

// WithParams overlays the given pairs onto the parameter map.
func (b *Builder) WithParams(params map[string]any) *Builder {
	for key, value := range params {
		b.params[key] = formatValue(value)
	}
	return b
}

// Build serializes the parameter map against the base path. Entries with
// empty keys or empty values are filtered out; if nothing remains, the bare
// base path is returned.
func (b *Builder) Build() string {
	return encode(b.path, b.params)
}

// BuildMainURL serializes against the recorded main-page path, defaulting to
// "/" when none was set. Its output belongs in the history-push response
// header so the client can update the visible address bar.
func (b *Builder) BuildMainURL() string {
	page := b.mainPage
	if page == "" {
		page = "/"
	}
	return encode(page, b.params)
}

// BuildPageURL serializes against a caller-supplied path.
func (b *Builder) BuildPageURL(pagePath string) string {
	return encode(pagePath, b.params)
}

// AllParams returns a copy of the full current parameter map. Rendering
// layers use it to emit hidden form fields that preserve sibling-component
// state across submits.
func (b *Builder) AllParams() map[string]string {
	out := make(map[string]string, len(b.params))
	for k, v := range b.params {
		out[k] = v
	}
	return out
}

// HiddenParams returns the non-empty parameters not named in exclude,
// ready to render as hidden inputs inside a component's own form.
func (b *Builder) HiddenParams(exclude ...string) map[string]string {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	out := make(map[string]string)
	for k, v := range b.params {
		if v == "" || skip[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// Path returns the builder's base path.
func (b *Builder) Path() string {
	return b.path
}

// encode appends the filtered, sorted, percent-encoded parameter map to path.
func encode(path string, params map[string]string) string {
	vals := url.Values{}
	for k, v := range params {
		if k == "" || v == "" {
			continue
		}
		vals.Set(k, v)
	}
	if len(vals) == 0 {
		return path
	}
	return path + "?" + vals.Encode()
}

// parseQueryString splits a raw query into a last-wins parameter map.
func parseQueryString(query string) map[string]string {
	params := map[string]string{}
	if query == "" {
		return params
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		params[key] = value
	}
	return params
}

// formatValue stringifies a parameter value using the same scalar rules the
// resolver applies in reverse.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
