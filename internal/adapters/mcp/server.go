// Package mcpadapter exposes the service layer as MCP tools over stdio.
package mcpadapter

import (
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const serverName = "ravegraph-work-dashboard"

type Server struct {
	svc ports.Services
	log *slog.Logger
}

func New(svc ports.Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, log: log}
}

// MCPServer builds the protocol server with every tool registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	ms := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, t := range s.tools() {
		ms.AddTool(t.Tool, t.Handler)
	}
	return ms
}

// ServeStdio blocks serving requests on stdin and stdout.
func (s *Server) ServeStdio(version string) error {
	s.log.Info("mcp server starting", "name", serverName, "version", version)
	return server.ServeStdio(s.MCPServer(version))
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: backlogTool, Handler: s.handleBacklog},
		{Tool: incidentWorkTool, Handler: s.handleIncidentWork},
		{Tool: trendsTool, Handler: s.handleTrends},
		{Tool: dashboardTool, Handler: s.handleDashboard},
		{Tool: searchEvidenceTool, Handler: s.handleSearchEvidence},
		{Tool: getEvidenceTool, Handler: s.handleGetEvidence},
		{Tool: upsertEvidenceTool, Handler: s.handleUpsertEvidence},
		{Tool: getClaimTool, Handler: s.handleGetClaim},
		{Tool: listClaimsTool, Handler: s.handleListClaims},
		{Tool: upsertClaimTool, Handler: s.handleUpsertClaim},
		{Tool: linkEvidenceTool, Handler: s.handleLinkEvidence},
	}
}

// result renders v as indented JSON. Errors become tool errors so the
// client sees them as content rather than as a protocol failure.
func (s *Server) result(tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		if domain.KindOf(err) == domain.KindDatabase {
			s.log.Error("tool failed", "tool", tool, "err", err)
		}
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
