// Package middleware provides production-grade HTTP middleware for stateview
// applications.
//
// This package includes:
//   - Bookmark redirect middleware (StateURLs) that turns persisted cookie
//     state into shareable URLs
//   - Prometheus metrics middleware
//   - OpenTelemetry distributed tracing middleware
//   - Request ID middleware
//
// All middleware are plain func(http.Handler) http.Handler wrappers and
// compose with chi or any stdlib-compatible router:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.Prometheus())
//	r.Use(middleware.StateURLs())
package middleware
