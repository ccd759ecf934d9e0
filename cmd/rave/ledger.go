package main

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(field, "%q is not a positive integer id", raw)
	}
	return id, nil
}

func parseIDs(field string, raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(field, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *cli) evidenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Manage evidence items",
	}
	cmd.AddCommand(c.evidenceAddCmd(), c.evidenceGetCmd(), c.evidenceSearchCmd(), c.evidenceDeleteCmd())
	return cmd
}

func (c *cli) evidenceAddCmd() *cobra.Command {
	var (
		id                             int64
		serviceID, etype, source, body string
		collectedAt                    string
		tags                           []string
		confidence, ttlHours           int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record evidence, or replace an existing item with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := ports.UpsertEvidenceInput{ServiceID: serviceID, Source: source, Tags: tags, Confidence: confidence}
			var err error
			if in.ID, err = optionalID(cmd, "id", id); err != nil {
				return err
			}
			if in.EvidenceType, err = domain.ParseEnum("type", etype, domain.EvidenceTypes); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(body), &in.Body); err != nil {
				return domain.Invalid("body", "must be a JSON object: %v", err)
			}
			if cmd.Flags().Changed("ttl-hours") {
				in.TTLHours = &ttlHours
			}
			if collectedAt != "" {
				t, err := time.Parse(time.RFC3339, collectedAt)
				if err != nil {
					return domain.Invalid("collected-at", "must be an RFC 3339 timestamp")
				}
				in.CollectedAt = &t
			}
			out, err := c.app.Services.Evidence.Upsert(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Replace the item with this ID")
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Service the evidence is about (required)")
	cmd.Flags().StringVar(&etype, "type", "", "Evidence type, e.g. SBOM or MONITORING (required)")
	cmd.Flags().StringVar(&source, "source", "", "Where the evidence came from (required)")
	cmd.Flags().StringVar(&body, "body", "{}", "Evidence payload as a JSON object")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated tags")
	cmd.Flags().IntVar(&confidence, "confidence", 0, "Confidence 0-100 (required)")
	cmd.Flags().IntVar(&ttlHours, "ttl-hours", 0, "Hours until the evidence goes stale")
	cmd.Flags().StringVar(&collectedAt, "collected-at", "", "RFC 3339 collection time, default now")
	_ = cmd.MarkFlagRequired("confidence")
	return cmd
}

func (c *cli) evidenceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one evidence item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			out, err := c.app.Services.Evidence.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) evidenceSearchCmd() *cobra.Command {
	var (
		serviceID, etype string
		tags             []string
		freshOnly        bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search evidence, most recently collected first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := ports.EvidenceFilter{ServiceID: serviceID, Tags: tags, FreshOnly: freshOnly}
			var err error
			if f.Type, err = domain.ParseEnum("type", etype, domain.EvidenceTypes); err != nil {
				return err
			}
			out, err := c.app.Services.Evidence.Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Filter by service ID")
	cmd.Flags().StringVar(&etype, "type", "", "Filter by evidence type")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Match any of these tags")
	cmd.Flags().BoolVar(&freshOnly, "fresh-only", false, "Exclude expired evidence")
	return cmd
}

func (c *cli) evidenceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an evidence item and its claim links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if err := c.app.Services.Evidence.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"deleted": id})
		},
	}
}

func (c *cli) claimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Manage readiness claims",
	}
	cmd.AddCommand(c.claimAddCmd(), c.claimGetCmd(), c.claimLinkCmd(true), c.claimLinkCmd(false), c.claimDeleteCmd())
	return cmd
}

func (c *cli) claimAddCmd() *cobra.Command {
	var (
		id                                        int64
		serviceID, title, section, status, reason string
		confidence                                int
		evidenceIDs                               []int64
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a claim, or replace an existing one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := ports.UpsertClaimInput{ServiceID: serviceID, Title: title, Section: section}
			var err error
			if in.ID, err = optionalID(cmd, "id", id); err != nil {
				return err
			}
			if in.Status, err = domain.ParseEnum("status", status, domain.ClaimStatuses); err != nil {
				return err
			}
			if cmd.Flags().Changed("confidence") {
				in.Confidence = &confidence
			}
			if cmd.Flags().Changed("reason") {
				in.Reason = &reason
			}
			if cmd.Flags().Changed("evidence-ids") {
				in.EvidenceIDs = append([]int64{}, evidenceIDs...)
			}
			out, err := c.app.Services.Claims.Upsert(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "Replace the claim with this ID")
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Service the claim is about (required)")
	cmd.Flags().StringVar(&title, "title", "", "Claim title (required)")
	cmd.Flags().StringVar(&section, "section", "", "Readiness section (required)")
	cmd.Flags().StringVar(&status, "status", "", "PASS, PARTIAL, FAIL or UNKNOWN (default UNKNOWN)")
	cmd.Flags().IntVar(&confidence, "confidence", 0, "Confidence 0-100")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the claim holds or fails")
	cmd.Flags().Int64SliceVar(&evidenceIDs, "evidence-ids", nil, "Replace linked evidence with these IDs")
	return cmd
}

func (c *cli) claimGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a claim with its evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			out, err := c.app.Services.Claims.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) claimLinkCmd(link bool) *cobra.Command {
	use, short := "link", "Link evidence to a claim"
	if !link {
		use, short = "unlink", "Remove evidence from a claim"
	}
	return &cobra.Command{
		Use:   use + " <claimId> <evidenceId>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			claimID, err := parseID("claimId", args[0])
			if err != nil {
				return err
			}
			ids, err := parseIDs("evidenceIds", args[1:])
			if err != nil {
				return err
			}
			op := c.app.Services.Claims.Link
			if !link {
				op = c.app.Services.Claims.Unlink
			}
			if err := op(cmd.Context(), claimID, ids); err != nil {
				return err
			}
			out, err := c.app.Services.Claims.Get(cmd.Context(), claimID)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) claimDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a claim and its evidence links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if err := c.app.Services.Claims.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"deleted": id})
		},
	}
}

func (c *cli) claimsCmd() *cobra.Command {
	var serviceID, section, status string
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "List claims, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := ports.ClaimFilter{ServiceID: serviceID, Section: section}
			var err error
			if f.Status, err = domain.ParseEnum("status", status, domain.ClaimStatuses); err != nil {
				return err
			}
			out, err := c.app.Services.Claims.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&serviceID, "service-id", "", "Filter by service ID")
	cmd.Flags().StringVar(&section, "section", "", "Filter by readiness section")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	return cmd
}
