package stateview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stateview-dev/stateview/internal/dev"
	"github.com/stateview-dev/stateview/pkg/middleware"
	"github.com/stateview-dev/stateview/pkg/registry"
	"github.com/stateview-dev/stateview/pkg/server"
)

// =============================================================================
// App Type
// =============================================================================

// App is the main stateview application entry point.
// It wraps the component registry, page routes, middleware, and static file
// serving into a single http.Handler.
//
// Create an App with stateview.New():
//
//	app := stateview.New(stateview.Config{
//	    Static:  stateview.StaticConfig{Dir: "public", Prefix: "/"},
//	    DevMode: os.Getenv("ENV") != "production",
//	})
//
//	app.MustRegister(counterComponent)
//	app.Page("/dashboard", dashboardHandler)
//	app.Run(":8080")
type App struct {
	registry *registry.Registry

	// Page routes, wrapped with the bookmark redirect middleware.
	pages map[string]http.HandlerFunc

	// Static file serving
	staticDir    string
	staticPrefix string
	staticFS     http.FileSystem

	reloader *dev.Reloader

	config Config
	logger *slog.Logger

	// Built exactly once, on the first Handler call. Concurrent first
	// requests must observe a single registry freeze.
	buildOnce sync.Once
	handler   http.Handler
}

// New creates a new stateview application with the given configuration.
func New(cfg Config) *App {
	if cfg.Static.Prefix == "" {
		cfg.Static.Prefix = "/"
	}
	if cfg.Observability.MetricsPath == "" {
		cfg.Observability.MetricsPath = "/metrics"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{
		registry:     registry.New(),
		pages:        make(map[string]http.HandlerFunc),
		staticDir:    cfg.Static.Dir,
		staticPrefix: cfg.Static.Prefix,
		config:       cfg,
		logger:       logger,
	}

	if cfg.Static.Dir != "" {
		app.staticFS = http.Dir(cfg.Static.Dir)
	}
	if cfg.DevMode {
		app.reloader = dev.NewReloader(logger)
	}

	return app
}

// =============================================================================
// Registration
// =============================================================================

// Register adds a component record to the app. Returns an error for route
// collisions or when registration happens after the first request.
func (a *App) Register(rec registry.Record) error {
	return a.registry.Add(rec)
}

// MustRegister is Register but panics on error. Use for static registration
// at startup, where a collision is a programming mistake.
func (a *App) MustRegister(recs ...registry.Record) {
	for _, rec := range recs {
		a.registry.MustAdd(rec)
	}
}

// Page registers a full-page GET route. Page routes pass through the
// bookmark redirect middleware, so navigating to them with persisted state
// cookies and an empty query lands on a URL carrying the state.
func (a *App) Page(path string, handler http.HandlerFunc) {
	a.pages[path] = handler
}

// =============================================================================
// http.Handler Implementation
// =============================================================================

// ServeHTTP implements http.Handler.
// It routes requests to static files or the component/page router.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if a.staticFS != nil && a.shouldServeStatic(r.URL.Path) {
		a.serveStatic(w, r)
		return
	}
	a.Handler().ServeHTTP(w, r)
}

// Handler builds (once) and returns the app's router. The first call freezes
// the component registry; registrations after that point fail.
func (a *App) Handler() http.Handler {
	a.buildOnce.Do(a.buildHandler)
	return a.handler
}

// buildHandler assembles the router. Runs under buildOnce.
func (a *App) buildHandler() {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID())

	if a.config.Observability.Metrics {
		mux.Use(middleware.Prometheus())
		mux.Handle(a.config.Observability.MetricsPath, promhttp.Handler())
		server.OnResolveFallback = middleware.RecordResolveFallback
		server.OnCookiesWritten = middleware.RecordCookiesWritten
	}
	if a.config.Observability.Tracing {
		mux.Use(middleware.OpenTelemetry())
	}

	// Components and pages share the bookmark redirect layer, so a direct
	// navigation to a component path restores cookie state into the URL the
	// same way a page navigation does.
	stateURLs := a.stateURLsMiddleware()
	mux.Group(func(g chi.Router) {
		if stateURLs != nil {
			g.Use(stateURLs)
		}
		a.registry.Freeze().Mount(g)
		for path, handler := range a.pages {
			g.Get(path, handler)
		}
	})

	if a.reloader != nil {
		mux.Get("/_stateview/reload", a.reloader.ServeHTTP)
	}

	a.handler = mux
}

func (a *App) stateURLsMiddleware() func(http.Handler) http.Handler {
	if a.config.StateURLs.Disabled {
		return nil
	}
	var opts []middleware.StateURLsOption
	if len(a.config.StateURLs.Denylist) > 0 {
		opts = append(opts, middleware.WithDenylist(a.config.StateURLs.Denylist...))
	}
	return middleware.StateURLs(opts...)
}

// =============================================================================
// Accessors
// =============================================================================

// Registry returns the underlying component registry for advanced use.
// Most apps won't need this.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Reloader returns the dev-mode live reload broadcaster, or nil outside
// dev mode.
func (a *App) Reloader() *dev.Reloader {
	return a.reloader
}

// Config returns the app configuration.
func (a *App) Config() Config {
	return a.config
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// =============================================================================
// Serving
// =============================================================================

// Run starts the server and blocks until SIGINT or SIGTERM, then shuts down
// gracefully.
//
//	app := stateview.New(cfg)
//	app.MustRegister(components...)
//	app.Run(":8080")
func (a *App) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr, "dev", a.config.DevMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
