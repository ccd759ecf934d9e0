// Package app is the composition root shared by the binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"ravegraph/internal/adapters/memory"
	"ravegraph/internal/adapters/postgres"
	"ravegraph/internal/config"
	"ravegraph/internal/ports"
	"ravegraph/internal/services/claims"
	"ravegraph/internal/services/controls"
	"ravegraph/internal/services/dashboard"
	"ravegraph/internal/services/evidence"
	"ravegraph/internal/services/readiness"
	"ravegraph/internal/services/workitems"
	"ravegraph/internal/shutdown"
	"ravegraph/internal/telemetry"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type App struct {
	Config   config.Config
	Log      *slog.Logger
	Store    ports.Store
	Services ports.Services
	Shutdown *shutdown.Manager
	// DB is set only for the postgres store.
	DB *postgres.DB
}

// NewServices builds every service over one store.
func NewServices(store ports.Store, log *slog.Logger) ports.Services {
	return ports.Services{
		Dashboard: dashboard.New(store, store, store, log),
		Controls:  controls.New(store),
		WorkItems: workitems.New(store),
		Readiness: readiness.New(store),
		Evidence:  evidence.New(store),
		Claims:    claims.New(store),
		Ping:      store.Ping,
	}
}

// Open initialises telemetry and the selected store. The caller must run
// a.Shutdown.Shutdown when done, which also closes the store.
func Open(ctx context.Context, cfg config.Config, storeKind string, log *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log, Shutdown: shutdown.New(log)}

	flush, err := telemetry.Init(ctx, telemetry.Options{Enabled: cfg.Telemetry.Enabled, ServiceName: "ravegraph", Version: Version})
	if err != nil {
		return nil, err
	}
	a.Shutdown.Register("telemetry", flush)

	switch storeKind {
	case "", StorePostgres:
		db, err := postgres.Connect(ctx, cfg.DB.DSN(), postgres.Options{
			MaxConns:       cfg.DB.MaxConns,
			ConnectTimeout: cfg.DB.ConnectTimeout,
			Logger:         log,
		})
		if err != nil {
			a.Shutdown.Shutdown(ctx)
			return nil, err
		}
		a.DB = db
		a.Store = db
	case StoreMemory:
		s := memory.New()
		memory.SeedDemo(s)
		a.Store = s
	default:
		a.Shutdown.Shutdown(ctx)
		return nil, fmt.Errorf("unknown store %q, want %s or %s", storeKind, StorePostgres, StoreMemory)
	}
	a.Shutdown.Register("store", func(context.Context) error {
		a.Store.Close()
		return nil
	})
	a.Services = NewServices(a.Store, log)
	log.Debug("app ready", "store", storeKind, "env", cfg.Env)
	return a, nil
}
