package main

import (
	"github.com/spf13/cobra"

	mcpadapter "ravegraph/internal/adapters/mcp"
	"ravegraph/internal/adapters/postgres"
	"ravegraph/internal/app"
	"ravegraph/internal/domain"
)

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the database schema",
	}
	cmd.AddCommand(
		c.migrateRun("up", "Apply all pending migrations", func(cmd *cobra.Command, m *postgres.Migrator) (any, error) {
			applied, err := m.Up(cmd.Context())
			return map[string]any{"applied": applied}, err
		}),
		c.migrateRun("down", "Roll back the most recent migration", func(cmd *cobra.Command, m *postgres.Migrator) (any, error) {
			version, err := m.Down(cmd.Context())
			return map[string]any{"rolledBack": version}, err
		}),
		c.migrateRun("status", "List migrations and whether they are applied", func(cmd *cobra.Command, m *postgres.Migrator) (any, error) {
			return m.Status(cmd.Context())
		}),
	)
	return cmd
}

func (c *cli) migrateRun(use, short string, run func(*cobra.Command, *postgres.Migrator) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.app.DB == nil {
				return domain.Invalid("store", "migrations need the postgres store")
			}
			m, err := c.app.DB.Migrator()
			if err != nil {
				return err
			}
			defer m.Close()
			out, err := run(cmd, m)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the dashboard and ledger as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpadapter.New(c.app.Services, c.app.Log).ServeStdio(app.Version)
		},
	}
}
