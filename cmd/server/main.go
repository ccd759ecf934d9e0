// Command server serves the read-only HTTP API over the work dashboard.
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

	"github.com/spf13/cobra"

	httpadapter "ravegraph/internal/adapters/http"
	"ravegraph/internal/app"
	"ravegraph/internal/config"
	"ravegraph/internal/domain"
	"ravegraph/internal/logging"
)

const shutdownGrace = 10 * time.Second

func main() {
	var configFile, store string
	code := 0
	root := &cobra.Command{
		Use:           "server",
		Short:         "Serve the work dashboard HTTP read API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(*cobra.Command, []string) {
			code = serve(configFile, store)
		},
	}
	root.Flags().StringVar(&configFile, "config", "", "Optional YAML config file")
	root.Flags().StringVar(&store, "store", app.StorePostgres, "Backing store: postgres or memory")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
	os.Exit(code)
}

func serve(configFile, store string) int {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return 1
	}
	log := logging.New(os.Stderr, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, store, log)
	if err != nil {
		if domain.KindOf(err) == domain.KindDatabase {
			fmt.Fprintln(os.Stderr, "Failed to connect to database. Please ensure PostgreSQL is running.")
			fmt.Fprintln(os.Stderr, "Run: docker compose up -d")
			return 2
		}
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return 1
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpadapter.New(a.Services, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	// Registered last so it drains before the store closes.
	a.Shutdown.Register("http", srv.Shutdown)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("listening", "addr", cfg.ListenAddr, "store", store, "version", app.Version)

	code := 0
	select {
	case <-ctx.Done():
		log.Info("shutting down", "cause", context.Cause(ctx))
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			code = 1
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	a.Shutdown.Shutdown(sctx)
	return code
}
