// Command rave is the CLI front end for the work dashboard: read views, the
// evidence ledger, schema migrations and the MCP tool server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ravegraph/internal/app"
	"ravegraph/internal/config"
	"ravegraph/internal/domain"
	"ravegraph/internal/logging"
)

var errConnect = errors.New("store connection failed")

type cli struct {
	configFile string
	store      string
	stderr     io.Writer
	app        *app.App
}

func newRootCmd(stderr io.Writer) (*cobra.Command, *cli) {
	c := &cli{stderr: stderr}
	root := &cobra.Command{
		Use:   "rave",
		Short: "Query the SRE work dashboard and the evidence ledger",
		Long: `rave reads resilience controls, incident work and readiness trends, and
manages evidence and claims about service readiness.

Examples:
  rave dashboard checkout              # Aggregated view for one service
  rave trends --days-back 14           # Readiness trends over two weeks
  rave evidence search --fresh-only    # Evidence that has not expired
  rave --store memory dashboard        # Run against built-in demo data`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "Optional YAML config file")
	root.PersistentFlags().StringVar(&c.store, "store", app.StorePostgres, "Backing store: postgres or memory")

	root.AddCommand(
		c.dashboardCmd(),
		c.controlsCmd(),
		c.workCmd(),
		c.trendsCmd(),
		c.evidenceCmd(),
		c.claimCmd(),
		c.claimsCmd(),
		c.migrateCmd(),
		c.mcpCmd(),
		c.pingCmd(),
	)
	return root, c
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	log := logging.New(c.stderr, cfg.Env, cfg.LogLevel)
	a, err := app.Open(cmd.Context(), cfg, c.store, log)
	if err != nil {
		if domain.KindOf(err) == domain.KindDatabase {
			return fmt.Errorf("%w: %w", errConnect, err)
		}
		return err
	}
	c.app = a
	return nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.app.Shutdown.Shutdown(ctx)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errConnect):
		return 2
	default:
		return 1
	}
}

func report(w io.Writer, err error) {
	if errors.Is(err, errConnect) {
		fmt.Fprintln(w, "Failed to connect to database. Please ensure PostgreSQL is running.")
		fmt.Fprintln(w, "Run: docker compose up -d")
		return
	}
	fmt.Fprintln(w, "Error: "+err.Error())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root, c := newRootCmd(os.Stderr)
	err := root.ExecuteContext(ctx)
	c.close()
	stop()
	if err != nil {
		report(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
