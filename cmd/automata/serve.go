package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/automata/internal/cli"
	httpadapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the workbench as a JSON API with an OpenAPI description, SSE change events and Prometheus metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics := observability.NewMetrics()
		e, err := setup(cmd, metrics)
		if err != nil {
			return err
		}
		defer e.close()

		port := e.cfg.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		handler := httpadapter.NewHandler(e.wb,
			httpadapter.WithLogger(e.logger),
			httpadapter.WithMetricsHandler(metrics.Handler()),
		)
		srv := &http.Server{
			Addr:    ":" + strconv.Itoa(port),
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting Automata Server on %s\n", srv.Addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Storing snapshots in: %s\n", describeStore(e))
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			fmt.Fprintf(cmd.OutOrStdout(), "\nStart shutdown... Signal: %v\n", sigCtx.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				e.logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("killing server: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Automata Server stopped gracefully")
			return nil
		}
	},
}

func describeStore(e *env) string {
	switch e.cfg.Store.Backend {
	case "file":
		return e.cfg.Store.Dir
	case "redis":
		return "redis://" + e.cfg.Store.Redis.Addr
	}
	return e.cfg.Store.Backend
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (default from config)")
}
