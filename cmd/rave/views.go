package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

// optionalID returns nil unless the flag was set on the command line.
func optionalID(cmd *cobra.Command, name string, v int64) (*int64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	if v <= 0 {
		return nil, domain.Invalid(name, "must be positive")
	}
	return &v, nil
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [serviceId]",
		Short: "Show the aggregated work dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f ports.ServiceFilter
			if len(args) == 1 {
				f.ServiceID = args[0]
			}
			d, err := c.app.Services.Dashboard.Get(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		},
	}
}

func (c *cli) controlsCmd() *cobra.Command {
	var (
		serviceID, status, priority, ctype string
		incidentID                         int64
	)
	cmd := &cobra.Command{
		Use:   "controls",
		Short: "List resilience backlog controls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := ports.ControlFilter{ServiceID: serviceID}
			var err error
			if f.Status, err = domain.ParseEnum("status", status, domain.ControlStatuses); err != nil {
				return err
			}
			if f.Priority, err = domain.ParseEnum("priority", priority, domain.Priorities); err != nil {
				return err
			}
			if f.Type, err = domain.ParseEnum("type", ctype, domain.ControlTypes); err != nil {
				return err
			}
			if f.IncidentID, err = optionalID(cmd, "incident-id", incidentID); err != nil {
				return err
			}
			out, err := c.app.Services.Controls.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Filter by service ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PROPOSED, APPROVED, IN_PROGRESS, COMPLETED, REJECTED)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (LOW, MEDIUM, HIGH, CRITICAL)")
	cmd.Flags().StringVar(&ctype, "type", "", "Filter by control type (PREVENT, DETECT, RESPOND, LEARN)")
	cmd.Flags().Int64Var(&incidentID, "incident-id", 0, "Filter by originating incident")
	return cmd
}

func (c *cli) workCmd() *cobra.Command {
	var (
		serviceID, status, wtype string
		controlID, incidentID    int64
	)
	cmd := &cobra.Command{
		Use:   "work",
		Short: "List incident-derived work items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := ports.WorkItemFilter{ServiceID: serviceID}
			var err error
			if f.Status, err = domain.ParseEnum("status", status, domain.WorkStatuses); err != nil {
				return err
			}
			if f.Type, err = domain.ParseEnum("type", wtype, domain.WorkTypes); err != nil {
				return err
			}
			if f.ControlID, err = optionalID(cmd, "control-id", controlID); err != nil {
				return err
			}
			if f.IncidentID, err = optionalID(cmd, "incident-id", incidentID); err != nil {
				return err
			}
			out, err := c.app.Services.WorkItems.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Filter by service ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (OPEN, IN_PROGRESS, COMPLETED, CLOSED)")
	cmd.Flags().StringVar(&wtype, "type", "", "Filter by work type (REMEDIATION, INVESTIGATION, DOCUMENTATION, MODEL_UPDATE)")
	cmd.Flags().Int64Var(&controlID, "control-id", 0, "Filter by associated control")
	cmd.Flags().Int64Var(&incidentID, "incident-id", 0, "Filter by originating incident")
	return cmd
}

func (c *cli) trendsCmd() *cobra.Command {
	var (
		serviceID string
		daysBack  int
	)
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show readiness trends per service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("days-back") && daysBack < 1 {
				return domain.Invalid("days-back", "must be at least 1")
			}
			out, err := c.app.Services.Readiness.Trends(cmd.Context(), ports.ReadinessFilter{ServiceID: serviceID, DaysBack: daysBack})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Filter by service ID")
	cmd.Flags().IntVar(&daysBack, "days-back", domain.DefaultDaysBack, "Days of history to consider")
	return cmd
}

func (c *cli) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Services.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("%w: %w", errConnect, err)
			}
			return printJSON(cmd, map[string]string{"status": "ok"})
		},
	}
}
