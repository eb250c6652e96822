package stateview

import (
	"log/slog"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the main application configuration.
// This is the user-friendly entry point for configuring a stateview app.
type Config struct {
	// Static configures static file serving.
	Static StaticConfig

	// StateURLs configures the bookmark redirect behavior on page routes.
	StateURLs StateURLsConfig

	// Observability configures metrics and tracing middleware.
	Observability ObservabilityConfig

	// DevMode enables development mode: verbose logging and the live-reload
	// endpoint. Never enable in production.
	DevMode bool

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files (e.g., "public").
	// Files in this directory are served at the URL prefix.
	Dir string

	// Prefix is the URL path prefix for static files (e.g., "/").
	// A file at public/styles.css with Prefix="/" is served at /styles.css.
	// Default: "/".
	Prefix string

	// CacheControl determines caching behavior for static files.
	// Default: CacheControlNone (no caching headers).
	CacheControl CacheControlStrategy

	// Headers are custom headers to add to all static file responses.
	Headers map[string]string
}

// StateURLsConfig configures bookmark redirects for page routes.
type StateURLsConfig struct {
	// Disabled turns bookmark redirects off entirely. Components still
	// resolve and persist state; the URL just stops reflecting it on
	// cookie-only navigation.
	Disabled bool

	// Denylist appends cookie names to the built-in denylist of session and
	// credential cookies that never appear in synthesized URLs.
	Denylist []string
}

// ObservabilityConfig configures metrics and tracing.
type ObservabilityConfig struct {
	// Metrics enables the Prometheus middleware and the /metrics endpoint.
	Metrics bool

	// MetricsPath is where the Prometheus handler is mounted.
	// Default: "/metrics".
	MetricsPath string

	// Tracing enables the OpenTelemetry middleware. The global tracer
	// provider must be configured separately.
	Tracing bool
}

// CacheControlStrategy determines caching behavior for static files.
type CacheControlStrategy int

const (
	// CacheControlNone adds no caching headers.
	// Use in development for instant updates.
	CacheControlNone CacheControlStrategy = iota

	// CacheControlProduction uses appropriate caching:
	// - Fingerprinted files (*.abc123.css): immutable, 1 year max-age
	// - Other files: short cache with revalidation
	CacheControlProduction
)

// =============================================================================
// Default Configurations
// =============================================================================

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Static: DefaultStaticConfig(),
		Observability: ObservabilityConfig{
			MetricsPath: "/metrics",
		},
		DevMode: false,
	}
}

// DefaultStaticConfig returns a StaticConfig with sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		Prefix:       "/",
		CacheControl: CacheControlNone,
	}
}
