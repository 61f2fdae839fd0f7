package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
	"github.com/linearmcp/linear-mcp-go/pkg/linear"
)

// Client is the full tracker surface the server needs: the batch
// orchestrator's operations plus issue listing for the read tools.
type Client interface {
	batch.TrackerClient
	ListIssues(ctx context.Context, filter linear.IssueFilter) ([]linear.Issue, error)
}

// NewServer wires the MCP server: it builds the orchestrator around the
// given tracker client and registers every tool. No business logic lives
// here, only composition.
func NewServer(client Client, opts batch.Options, version string, log zerolog.Logger) *server.MCPServer {
	orc := batch.NewOrchestrator(client, log, opts)

	s := server.NewMCPServer(
		"linear-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Batch tools for Linear. Use the list_* tools to discover valid team, state, label, project and user references, then create_issues / update_issues / create_projects / update_projects / create_comments / update_comments to apply up to 50 changes per call. Every batch call reports per-item success and failure; failed items carry an error code and suggestions and can be resubmitted alone."),
	)

	s.AddTool(CreateIssues(orc))
	s.AddTool(UpdateIssues(orc))
	s.AddTool(CreateProjects(orc))
	s.AddTool(UpdateProjects(orc))
	s.AddTool(CreateComments(orc))
	s.AddTool(UpdateComments(orc))

	s.AddTool(ListTeams(client))
	s.AddTool(ListProjects(client))
	s.AddTool(ListUsers(client))
	s.AddTool(ListIssues(client))
	s.AddTool(GetIssue(client))

	return s
}
