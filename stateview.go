// Package stateview is a server-driven UI state engine for Go web apps.
//
// Components declare their view state as a plain struct. On every request the
// state is resolved field by field with query parameters beating cookies
// beating struct defaults, written back to cookies so it survives navigation,
// and exposed to the handler together with a URL builder that keeps every
// synthesized link consistent with the state it was built from. A bookmark
// middleware turns persisted cookie state back into shareable URLs on plain
// navigation.
//
// The root package re-exports the pieces most apps need; the pkg/ packages
// carry the full surface.
//
//	type counterState struct {
//	    Count int `json:"count"`
//	}
//
//	counter := stateview.Component("counter", "GET", "/views/counter",
//	    func(ctx *stateview.Ctx, state counterState, urls *stateview.URLBuilder) error {
//	        next := urls.Clone().WithParam("count", state.Count+1)
//	        ctx.PushURL(next.BuildMainURL())
//	        return ctx.HTML(200, renderCounter(state.Count, next.Build()))
//	    })
//
//	app := stateview.New(stateview.DefaultConfig())
//	app.MustRegister(counter)
//	app.Run(":8080")
package stateview

import (
	"github.com/stateview-dev/stateview/pkg/registry"
	"github.com/stateview-dev/stateview/pkg/server"
	"github.com/stateview-dev/stateview/pkg/urlbuilder"
	"github.com/stateview-dev/stateview/pkg/viewstate"
)

// Version is the current stateview release.
const Version = "0.3.0"

// Unset is the query sentinel that clears a persisted field back to its
// default for this and future requests.
const Unset = viewstate.Unset

// Ctx is the per-request context handed to component handlers.
type Ctx = server.Ctx

// Record is a registered component route.
type Record = registry.Record

// URLBuilder synthesizes URLs from a parameter set.
type URLBuilder = urlbuilder.Builder

// Injectable is an extra handler input hydrated by a pipeline stage.
type Injectable = server.Injectable

// HTTPError carries an HTTP status code through the pipeline.
type HTTPError = server.HTTPError

// Component wraps a typed handler into a registrable component record.
// See server.Component for the pipeline semantics.
func Component[T any](name, method, path string, handler server.Handler[T], opts ...server.Option) Record {
	return server.Component(name, method, path, handler, opts...)
}

// WithInjectable declares an extra handler input for a component.
var WithInjectable = server.WithInjectable

// WithLogger sets a component's request logger.
var WithLogger = server.WithLogger

// NewURLBuilder creates a URL builder from a base path and raw query string.
var NewURLBuilder = urlbuilder.New
