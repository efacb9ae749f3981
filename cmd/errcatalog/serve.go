package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/errcatalog/internal/logger"
	"github.com/dmitrymomot/errcatalog/internal/server"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/httpapi"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog API and Prometheus metrics over HTTP",
		Long: `Serve exposes the catalog API and /metrics. SIGHUP reloads the resources;
the running catalog keeps serving when the reload fails. SIGINT and SIGTERM
shut the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			observer := metrics.NewObserver(registry)

			catalog, adapter, err := a.load(ctx, errcatalog.WithObserver(observer))
			if err != nil {
				return err
			}
			store := errcatalog.NewStore(catalog)

			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			srv := server.NewFromConfig(a.cfg.HTTP,
				server.WithLogger(a.log),
				server.WithReload(func(ctx context.Context) error {
					next, err := store.Reload(ctx, adapter)
					if err != nil {
						return err
					}
					a.log.InfoContext(ctx, "error catalog reloaded",
						logger.Locales(len(next.Locales()), next.DefaultLocale()))
					return nil
				}),
			)

			return srv.Run(ctx, newRouter(store, registry, a))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ERRCATALOG_HTTP_ADDR)")
	return cmd
}

func newRouter(store *errcatalog.Store, registry *prometheus.Registry, a *app) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	r.Mount("/", httpapi.NewHandler(store,
		httpapi.WithLogger(a.log),
		httpapi.WithMiddleware(httpapi.RequestID),
	))
	return r
}
