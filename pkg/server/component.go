package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stateview-dev/stateview/pkg/persist"
	"github.com/stateview-dev/stateview/pkg/registry"
	"github.com/stateview-dev/stateview/pkg/urlbuilder"
	"github.com/stateview-dev/stateview/pkg/viewstate"
)

// Handler is a component handler: a plain function receiving the resolved
// state and the request's URL builder.
type Handler[T any] func(ctx *Ctx, state T, urls *urlbuilder.Builder) error

// OnResolveFallback, when set, is invoked with the route path each time
// resolution degrades to the type's full default. Observability wiring
// (middleware.Prometheus) installs a counter here; the hook is set once at
// startup, before serving.
var OnResolveFallback func(path string)

// OnCookiesWritten, when set, is invoked with the number of state cookies
// written back during the persist stage. Set once at startup, like
// OnResolveFallback.
var OnCookiesWritten func(count int)

// Option configures a component wrapper.
type Option func(*componentConfig)

type componentConfig struct {
	logger      *slog.Logger
	injectables []func() Injectable
}

// WithLogger sets the component's request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *componentConfig) {
		c.logger = logger
	}
}

// WithInjectable registers a constructor for an extra handler input. A fresh
// instance is hydrated per request during the stage the type declares.
func WithInjectable(make func() Injectable) Option {
	return func(c *componentConfig) {
		c.injectables = append(c.injectables, make)
	}
}

// Component wraps a typed handler into a registry record. Each request runs
// the resolve → persist → authorize pipeline, then the handler:
//
//  1. resolve: merge T's defaults, the cookie jar, and the query into a
//     Resolved[T]; seed a URL builder with the full incoming parameter set
//     and, on partial updates, the logical page path from the client's
//     current-URL header.
//  2. persist: write the resolved map back to cookies (deleting emptied
//     fields), making state durable before the handler can fail.
//  3. authorize: hydrate injectables stage by stage; an error here rejects
//     the request with the injectable's status code.
func Component[T any](name, method, path string, handler Handler[T], opts ...Option) registry.Record {
	cfg := componentConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return registry.Record{
		Name:   name,
		Method: method,
		Path:   path,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			ctx := NewCtx(w, r, cfg.logger)

			var res viewstate.Resolved[T]

			stages := []Stage{
				{Name: StageResolve, Run: func(c *Ctx) error {
					res = viewstate.Resolve[T](c.query, persist.FromRequest(r))
					c.values = res.Values
					if res.Degraded {
						c.logger.Warn("view state degraded to defaults",
							"component", name, "path", c.Path())
						if OnResolveFallback != nil {
							OnResolveFallback(path)
						}
					}

					c.urls = urlbuilder.FromValues(path, r.URL.Query())
					if page, ok := c.MainPagePath(); ok {
						c.urls.WithMainPage(page)
					}
					return nil
				}},
				{Name: StagePersist, Run: func(c *Ctx) error {
					persist.Write(c.w, c.values)
					if OnCookiesWritten != nil && len(c.values) > 0 {
						OnCookiesWritten(len(c.values))
					}
					return nil
				}},
				{Name: StageAuthorize, Run: func(c *Ctx) error {
					return hydrateInjectables(c, cfg.injectables, StageAuthorize)
				}},
			}

			if stage, err := runStages(ctx, stages); err != nil {
				respondError(ctx, name, string(stage), err)
				return
			}

			if err := handler(ctx, res.State, ctx.urls); err != nil {
				respondError(ctx, name, "handler", err)
			}
		},
	}
}

// hydrateInjectables runs the constructors whose product belongs to the
// given stage and records the results on the context.
func hydrateInjectables(ctx *Ctx, makes []func() Injectable, stage StageName) error {
	for _, make := range makes {
		inj := make()
		if inj.SuppliedBy() != stage {
			continue
		}
		if err := inj.Hydrate(ctx); err != nil {
			return err
		}
		ctx.inject(inj)
	}
	return nil
}

// respondError converts a pipeline or handler error into an HTTP response.
func respondError(ctx *Ctx, component, stage string, err error) {
	code := http.StatusInternalServerError
	msg := "internal server error"

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		msg = httpErr.Message
	}

	ctx.logger.Error("component request failed",
		"component", component, "stage", stage, "status", code, "error", err)
	http.Error(ctx.w, msg, code)
}
