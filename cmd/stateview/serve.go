package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stateview-dev/stateview"
	"github.com/stateview-dev/stateview/examples/dashboard"
	"github.com/stateview-dev/stateview/internal/config"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		devMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo dashboard",
		Long: `Serve the demo dashboard application.

The dashboard exercises the full pipeline: a counter, a greeter, and a
sortable user table, each persisting its state to cookies and keeping
the URL in sync. Configuration is read from stateview.json when present.

Examples:
  stateview serve
  stateview serve --port=9000
  stateview serve --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, devMode)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from stateview.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from stateview.json)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode with live reload")

	return cmd
}

func runServe(port int, host string, devMode bool) error {
	cfg := config.New()
	if wd, err := os.Getwd(); err == nil && config.Exists(wd) {
		loaded, err := config.Load(wd)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Info("loaded config", "path", cfg.Path())
	}

	if port > 0 {
		cfg.Port = port
	}
	if host != "" {
		cfg.Host = host
	}

	app := dashboard.NewApp(stateview.Config{
		Static: stateview.StaticConfig{
			Dir:    cfg.Static.Dir,
			Prefix: cfg.Static.Prefix,
		},
		StateURLs: stateview.StateURLsConfig{
			Disabled: cfg.StateURLs.Disabled,
			Denylist: cfg.StateURLs.Denylist,
		},
		Observability: stateview.ObservabilityConfig{
			Metrics:     cfg.Observability.Metrics,
			MetricsPath: cfg.Observability.MetricsPath,
			Tracing:     cfg.Observability.Tracing,
		},
		DevMode: devMode,
		Logger:  slog.Default(),
	})

	logger.Info("serving demo dashboard", "url", cfg.URL(), "dev", devMode)
	return app.Run(cfg.Address())
}
