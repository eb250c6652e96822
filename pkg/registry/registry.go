// Package registry collects component route records at process startup and
// exposes them as an immutable snapshot bound once into the HTTP router.
//
// Registration happens through direct calls while the process boots; there
// is no runtime mutation. A collision, two records claiming the same
// (method, path), is a configuration defect and is surfaced as a fatal
// error before the process begins serving. After Freeze the snapshot is read
// concurrently by request handling without locking: no concurrent writer
// exists.
package registry

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stateview-dev/stateview/internal/errors"
)

// Record describes one registered component: its name, route, HTTP method,
// and handler. Records are created once at startup and read-only afterward.
type Record struct {
	Name    string
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Registry accumulates records during startup.
type Registry struct {
	records []Record
	routes  map[string]string // "METHOD path" -> component name
	frozen  bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		routes: make(map[string]string),
	}
}

// Add registers a component record. It returns a structured error on
// collisions, invalid paths, missing handlers, or registration after Freeze.
func (r *Registry) Add(rec Record) error {
	if r.frozen {
		return errors.New("E104").
			WithDetail("component %q registered after the registry snapshot was taken", rec.Name)
	}
	if rec.Handler == nil {
		return errors.New("E102").
			WithDetail("component %q has a nil handler", rec.Name)
	}
	if rec.Path == "" || !strings.HasPrefix(rec.Path, "/") {
		return errors.New("E103").
			WithDetail("component %q has route path %q", rec.Name, rec.Path)
	}

	method := rec.Method
	if method == "" {
		method = http.MethodGet
	}
	rec.Method = strings.ToUpper(method)

	key := rec.Method + " " + rec.Path
	if prior, exists := r.routes[key]; exists {
		return errors.New("E101").
			WithDetail("components %q and %q both claim %s", prior, rec.Name, key).
			WithSuggestion("give one of the components a distinct route path or method")
	}

	r.routes[key] = rec.Name
	r.records = append(r.records, rec)
	return nil
}

// MustAdd registers a record and panics on error. Registration errors are
// programming defects, so panicking during startup is the intended failure
// mode for static wiring.
func (r *Registry) MustAdd(rec Record) {
	if err := r.Add(rec); err != nil {
		panic(err)
	}
}

// Freeze ends the registration phase and returns the immutable snapshot.
// Further Add calls fail. Freeze may be called once; repeated calls return
// the same contents.
func (r *Registry) Freeze() *Snapshot {
	r.frozen = true
	records := make([]Record, len(r.records))
	copy(records, r.records)
	return &Snapshot{records: records}
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Snapshot is a frozen, read-only view of the registry, safe for concurrent
// reads during serving.
type Snapshot struct {
	records []Record
}

// Records returns the registered records in registration order.
func (s *Snapshot) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Lookup finds a record by component name.
func (s *Snapshot) Lookup(name string) (Record, bool) {
	for _, rec := range s.records {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// Mount binds every record into the chi router. Called exactly once at
// startup, after which the router dispatches without further registry
// involvement.
func (s *Snapshot) Mount(mux chi.Router) {
	for _, rec := range s.records {
		mux.Method(rec.Method, rec.Path, rec.Handler)
	}
}
