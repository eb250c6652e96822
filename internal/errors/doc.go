// Package errors provides structured startup and configuration errors for
// stateview.
//
// Errors carry a stable code, a category, and optional detail, suggestion,
// and documentation link. They are reserved for faults that must stop the
// process before it begins serving (registry collisions, bad configuration):
// request-time state resolution is fail-soft and never surfaces errors
// (see pkg/viewstate).
//
// # Error Categories
//
//   - registry: component registration defects (path/method collisions)
//   - config: stateview.json problems (unreadable file, invalid values)
//   - startup: everything else that prevents serving
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(`components "counter" and "greeter" both claim GET /counter`).
//	    WithSuggestion("give one of the components a distinct route path")
//
//	errors.PrintError(err)
package errors
