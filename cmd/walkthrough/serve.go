package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/walkthrough/internal/cli"
	httpAdapter "github.com/aretw0/walkthrough/pkg/adapters/http"
	"github.com/aretw0/walkthrough/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [page]",
	Short: "Start the HTTP tour server",
	Long: `Serves tours of one page over a JSON API. Every tour is a session kept in the
configured store; step changes are streamed as Server-Sent Events and counted on /metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(cfg.Log.Level, false)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}

		dir := pagePath(cmd, args)
		engine, err := cli.CreateEngine(dir, cfg, logger, metrics.Hooks())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		sessions, closeStore, err := cli.OpenSessions(ctx, cfg.Store, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		handler, err := httpAdapter.NewHandler(engine, sessions,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Starting Walkthrough Server on %s\n", srv.Addr)
			fmt.Fprintf(out, "Serving page: %s (store: %s)\n", dir, cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Fprintf(cmd.OutOrStdout(), "\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Walkthrough Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	_ = v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
