// Package viewstate derives a component's field schema from its state type
// and resolves the component's configuration for a request.
//
// A view state is a flat struct of scalar fields (string, integer, float,
// bool) describing one component's visible configuration. For every request
// the resolver merges three sources field by field, with strict precedence:
//
//	query parameter > cookie > type default
//
// The merge is never whole-object: a request carrying only ?count=7 leaves
// every other field sourced from its cookie or default, which is what makes
// independent partial updates of co-located components possible.
//
// Resolution is fail-soft. Unparsable values fall back to string
// interpretation; if the merged map cannot be deserialized into the state
// type at all, the type's full default is used instead.
//
// Example:
//
//	type CounterState struct {
//	    Count int `json:"count"`
//	}
//
//	res := viewstate.Resolve[CounterState](query, persist.FromRequest(r))
//	res.State.Count    // typed, merged value
//	res.Values         // stringified per-field map, feeds cookie persistence
package viewstate
