package mcpadapter

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func names[T ~string](all []T) []string {
	out := make([]string, len(all))
	for i, v := range all {
		out[i] = string(v)
	}
	return out
}

var serviceIDArg = mcp.WithString("serviceId", mcp.Description("Optional: filter by service ID"))

var backlogTool = mcp.NewTool("get_resilience_backlog",
	mcp.WithDescription("Get resilience backlog controls, categorised as Prevent/Detect/Respond/Learn."),
	serviceIDArg,
	mcp.WithString("status", mcp.Enum(names(domain.ControlStatuses)...), mcp.Description("Optional: filter by control status")),
	mcp.WithString("priority", mcp.Enum(names(domain.Priorities)...), mcp.Description("Optional: filter by priority")),
	mcp.WithString("controlType", mcp.Enum(names(domain.ControlTypes)...), mcp.Description("Optional: filter by control type")),
	mcp.WithNumber("incidentId", mcp.Min(1), mcp.Description("Optional: filter by originating incident")),
)

func (s *Server) handleBacklog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	f := ports.ControlFilter{
		ServiceID:  a.str("serviceId"),
		Status:     enum(a, "status", domain.ControlStatuses),
		Priority:   enum(a, "priority", domain.Priorities),
		Type:       enum(a, "controlType", domain.ControlTypes),
		IncidentID: a.optID("incidentId"),
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Controls.List(ctx, f)
	return s.result(req.Params.Name, out, err)
}

var incidentWorkTool = mcp.NewTool("get_incident_work",
	mcp.WithDescription("Get incident-derived work items: tickets and remediation work."),
	serviceIDArg,
	mcp.WithString("status", mcp.Enum(names(domain.WorkStatuses)...), mcp.Description("Optional: filter by work item status")),
	mcp.WithString("workType", mcp.Enum(names(domain.WorkTypes)...), mcp.Description("Optional: filter by work type")),
	mcp.WithNumber("controlId", mcp.Min(1), mcp.Description("Optional: filter by associated control ID")),
	mcp.WithNumber("incidentId", mcp.Min(1), mcp.Description("Optional: filter by originating incident")),
)

func (s *Server) handleIncidentWork(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	f := ports.WorkItemFilter{
		ServiceID:  a.str("serviceId"),
		Status:     enum(a, "status", domain.WorkStatuses),
		Type:       enum(a, "workType", domain.WorkTypes),
		ControlID:  a.optID("controlId"),
		IncidentID: a.optID("incidentId"),
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.WorkItems.List(ctx, f)
	return s.result(req.Params.Name, out, err)
}

var trendsTool = mcp.NewTool("get_readiness_trends",
	mcp.WithDescription("Get readiness trends: current score, previous score, direction and history per service."),
	serviceIDArg,
	mcp.WithNumber("daysBack", mcp.Min(1), mcp.Description("Optional: days of history to consider (default: 30)")),
)

func (s *Server) handleTrends(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	f := ports.ReadinessFilter{ServiceID: a.str("serviceId")}
	if d := a.optInt("daysBack"); d != nil {
		if *d < 1 {
			a.fail("daysBack", "must be at least 1")
		}
		f.DaysBack = *d
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Readiness.Trends(ctx, f)
	return s.result(req.Params.Name, out, err)
}

var dashboardTool = mcp.NewTool("get_work_dashboard",
	mcp.WithDescription("Get the aggregated work dashboard: resilience backlog, incident work, readiness trends and summary statistics."),
	mcp.WithString("serviceId", mcp.Description("Optional: filter all data by service ID")),
)

func (s *Server) handleDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	f := ports.ServiceFilter{ServiceID: a.str("serviceId")}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Dashboard.Get(ctx, f)
	return s.result(req.Params.Name, out, err)
}

var searchEvidenceTool = mcp.NewTool("search_evidence",
	mcp.WithDescription("Search evidence items, most recently collected first."),
	serviceIDArg,
	mcp.WithString("evidenceType", mcp.Enum(names(domain.EvidenceTypes)...), mcp.Description("Optional: filter by evidence type")),
	mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Optional: match items carrying any of these tags")),
	mcp.WithBoolean("freshOnly", mcp.Description("Optional: exclude expired evidence")),
)

func (s *Server) handleSearchEvidence(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	f := ports.EvidenceFilter{
		ServiceID: a.str("serviceId"),
		Type:      enum(a, "evidenceType", domain.EvidenceTypes),
		Tags:      a.strings("tags"),
		FreshOnly: a.flag("freshOnly"),
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Evidence.Search(ctx, f)
	return s.result(req.Params.Name, out, err)
}

var getEvidenceTool = mcp.NewTool("get_evidence",
	mcp.WithDescription("Get one evidence item by ID."),
	mcp.WithNumber("id", mcp.Required(), mcp.Min(1), mcp.Description("Evidence item ID")),
)

func (s *Server) handleGetEvidence(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	id := a.id("id")
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Evidence.Get(ctx, id)
	return s.result(req.Params.Name, out, err)
}

var upsertEvidenceTool = mcp.NewTool("upsert_evidence",
	mcp.WithDescription("Create an evidence item, or replace every field of an existing one when id is given."),
	mcp.WithNumber("id", mcp.Min(1), mcp.Description("Optional: ID of the item to replace")),
	mcp.WithString("serviceId", mcp.Required(), mcp.Description("Service the evidence is about")),
	mcp.WithString("evidenceType", mcp.Required(), mcp.Enum(names(domain.EvidenceTypes)...)),
	mcp.WithString("source", mcp.Required(), mcp.Description("Where the evidence came from")),
	mcp.WithObject("body", mcp.Required(), mcp.Description("Raw evidence payload")),
	mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	mcp.WithNumber("confidence", mcp.Required(), mcp.Min(domain.MinConfidence), mcp.Max(domain.MaxConfidence), mcp.Description("0-100")),
	mcp.WithNumber("ttlHours", mcp.Min(1), mcp.Description("Optional: hours until the evidence goes stale")),
	mcp.WithString("collectedAt", mcp.Description("Optional: RFC 3339 collection time, default now")),
)

func (s *Server) handleUpsertEvidence(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	in := ports.UpsertEvidenceInput{
		ID:           a.optID("id"),
		ServiceID:    a.str("serviceId"),
		EvidenceType: enum(a, "evidenceType", domain.EvidenceTypes),
		Source:       a.str("source"),
		Body:         a.object("body"),
		Tags:         a.strings("tags"),
		Confidence:   a.num("confidence"),
		TTLHours:     a.optInt("ttlHours"),
		CollectedAt:  a.timestamp("collectedAt"),
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Evidence.Upsert(ctx, in)
	return s.result(req.Params.Name, out, err)
}

var getClaimTool = mcp.NewTool("get_claim",
	mcp.WithDescription("Get a claim with its linked evidence."),
	mcp.WithNumber("id", mcp.Required(), mcp.Min(1), mcp.Description("Claim ID")),
)

func (s *Server) handleGetClaim(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	id := a.id("id")
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Claims.Get(ctx, id)
	return s.result(req.Params.Name, out, err)
}

var listClaimsTool = mcp.NewTool("list_claims",
	mcp.WithDescription("List readiness claims, newest first."),
	serviceIDArg,
	mcp.WithString("section", mcp.Description("Optional: filter by readiness section")),
	mcp.WithString("status", mcp.Enum(names(domain.ClaimStatuses)...), mcp.Description("Optional: filter by claim status")),
)

func (s *Server) handleListClaims(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	f := ports.ClaimFilter{
		ServiceID: a.str("serviceId"),
		Section:   a.str("section"),
		Status:    enum(a, "status", domain.ClaimStatuses),
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Claims.List(ctx, f)
	return s.result(req.Params.Name, out, err)
}

var upsertClaimTool = mcp.NewTool("upsert_claim",
	mcp.WithDescription("Create a claim, or replace an existing one when id is given. evidenceIds, when present, replaces the claim's links."),
	mcp.WithNumber("id", mcp.Min(1), mcp.Description("Optional: ID of the claim to replace")),
	mcp.WithString("serviceId", mcp.Required()),
	mcp.WithString("title", mcp.Required()),
	mcp.WithString("section", mcp.Required(), mcp.Description("Readiness section the claim belongs to")),
	mcp.WithString("status", mcp.Enum(names(domain.ClaimStatuses)...), mcp.Description("Default UNKNOWN")),
	mcp.WithNumber("confidence", mcp.Min(domain.MinConfidence), mcp.Max(domain.MaxConfidence), mcp.Description("0-100, default 0")),
	mcp.WithString("reason"),
	mcp.WithArray("evidenceIds", mcp.Items(map[string]any{"type": "integer", "minimum": 1})),
)

func (s *Server) handleUpsertClaim(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	in := ports.UpsertClaimInput{
		ID:          a.optID("id"),
		ServiceID:   a.str("serviceId"),
		Title:       a.str("title"),
		Section:     a.str("section"),
		Status:      enum(a, "status", domain.ClaimStatuses),
		Confidence:  a.optInt("confidence"),
		Reason:      a.optStr("reason"),
		EvidenceIDs: a.ids("evidenceIds"),
	}
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	out, err := s.svc.Claims.Upsert(ctx, in)
	return s.result(req.Params.Name, out, err)
}

var linkEvidenceTool = mcp.NewTool("link_claim_evidence",
	mcp.WithDescription("Link evidence items to a claim. Existing links are kept."),
	mcp.WithNumber("claimId", mcp.Required(), mcp.Min(1)),
	mcp.WithArray("evidenceIds", mcp.Required(), mcp.Items(map[string]any{"type": "integer", "minimum": 1})),
)

func (s *Server) handleLinkEvidence(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(req)
	claimID := a.id("claimId")
	ids := a.ids("evidenceIds")
	if a.err != nil {
		return s.result(req.Params.Name, nil, a.err)
	}
	if err := s.svc.Claims.Link(ctx, claimID, ids); err != nil {
		return s.result(req.Params.Name, nil, err)
	}
	out, err := s.svc.Claims.Get(ctx, claimID)
	return s.result(req.Params.Name, out, err)
}
