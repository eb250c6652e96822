// Package server wires state resolution, cookie persistence, and URL
// construction into plain HTTP handlers.
//
// Component handlers are ordinary functions receiving already-resolved
// state:
//
//	rec := server.Component("counter", "GET", "/counter",
//	    func(ctx *server.Ctx, state CounterState, urls *urlbuilder.Builder) error {
//	        inc := urls.Clone().WithParam("count", state.Count+1).Build()
//	        ctx.PushURL(urls.BuildMainURL())
//	        return ctx.HTML(http.StatusOK, render(state, inc))
//	    })
//
// Behind each handler runs a fixed, ordered pipeline of named stages
// (resolve, persist, authorize) applied uniformly by the wrapper. The
// resolve and persist stages never fail (resolution is fail-soft by
// design); the authorize stage hydrates Injectable parameter types and is
// the only stage that can reject a request.
//
// All pipeline work is synchronous computation over data already
// materialized for the request. Nothing here blocks, performs I/O beyond
// the response writer, or shares mutable state across requests.
package server
