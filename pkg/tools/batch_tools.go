// Package tools defines the MCP tools exposed by the server: batch
// create/update tools built on the orchestrator, plus read-only listing
// tools for discovering valid identifiers.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
)

// decodeRequest turns the raw tool arguments into a batch request, with
// each decoded item wrapped into its operation variant.
func decodeRequest[T any](req mcp.CallToolRequest, wrap func(*T) batch.Item) (*batch.Request, error) {
	args := req.GetArguments()

	raw, ok := args["items"]
	if !ok {
		return nil, fmt.Errorf("items is required")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid items: %w", err)
	}
	var inputs []T
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("invalid items: %w", err)
	}

	items := make([]batch.Item, len(inputs))
	for i := range inputs {
		items[i] = wrap(&inputs[i])
	}

	dryRun, _ := args["dry_run"].(bool)
	parallel, _ := args["parallel"].(bool)
	return &batch.Request{Items: items, DryRun: dryRun, Parallel: parallel}, nil
}

func runBatch(ctx context.Context, o *batch.Orchestrator, req *batch.Request) (*mcp.CallToolResult, error) {
	out, err := o.Run(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructured(out, batch.Report(*out)), nil
}

func batchOptions(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithArray("items",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Items to process, %d-%d per call", batch.MinItems, batch.MaxItems)),
			mcp.Items(map[string]any{"type": "object"}),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Validate the items without sending anything"),
		),
		mcp.WithBoolean("parallel",
			mcp.Description("Dispatch all items concurrently instead of sequentially"),
		),
	)
}

// CreateIssues creates a tool that creates up to 50 issues in one call.
func CreateIssues(o *batch.Orchestrator) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_issues",
			batchOptions(
				mcp.WithDescription(`Create multiple Linear issues in one call. Each item needs a title and a team (key, name or id). Optional per item: description, priority (0-4 or none/urgent/high/medium/normal/low), state (name or type), labels, project, assignee (id, email or name), estimate, due_date (YYYY-MM-DD or @today+Nd), parent, cycle. Unassigned issues go to the authenticated user.`),
			)...,
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			req, err := decodeRequest(request, func(in *batch.IssueCreateInput) batch.Item {
				return batch.Item{IssueCreate: in}
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return runBatch(ctx, o, req)
		}
}

// UpdateIssues creates a tool that updates up to 50 issues in one call.
func UpdateIssues(o *batch.Orchestrator) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("update_issues",
			batchOptions(
				mcp.WithDescription(`Update multiple Linear issues in one call. Each item needs an issue reference (id, identifier like ENG-123, or issue URL) plus the fields to change: title, description, priority, state, labels, project, assignee, estimate, due_date, cycle.`),
			)...,
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			req, err := decodeRequest(request, func(in *batch.IssueUpdateInput) batch.Item {
				return batch.Item{IssueUpdate: in}
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return runBatch(ctx, o, req)
		}
}

// CreateProjects creates a tool that creates up to 50 projects in one call.
func CreateProjects(o *batch.Orchestrator) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_projects",
			batchOptions(
				mcp.WithDescription(`Create multiple Linear projects in one call. Each item needs a name. Optional per item: description, team (key, name or id), lead (id, email or name), state, target_date.`),
			)...,
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			req, err := decodeRequest(request, func(in *batch.ProjectCreateInput) batch.Item {
				return batch.Item{ProjectCreate: in}
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return runBatch(ctx, o, req)
		}
}

// UpdateProjects creates a tool that updates up to 50 projects in one call.
func UpdateProjects(o *batch.Orchestrator) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("update_projects",
			batchOptions(
				mcp.WithDescription(`Update multiple Linear projects in one call. Each item needs a project reference (id or name) plus the fields to change: name, description, lead, state, target_date.`),
			)...,
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			req, err := decodeRequest(request, func(in *batch.ProjectUpdateInput) batch.Item {
				return batch.Item{ProjectUpdate: in}
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return runBatch(ctx, o, req)
		}
}

// CreateComments creates a tool that adds up to 50 comments in one call.
func CreateComments(o *batch.Orchestrator) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("create_comments",
			batchOptions(
				mcp.WithDescription(`Add comments to multiple Linear issues in one call. Each item needs an issue reference (id, identifier or URL) and a markdown body.`),
			)...,
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			req, err := decodeRequest(request, func(in *batch.CommentCreateInput) batch.Item {
				return batch.Item{CommentCreate: in}
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return runBatch(ctx, o, req)
		}
}

// UpdateComments creates a tool that rewrites up to 50 comments in one call.
func UpdateComments(o *batch.Orchestrator) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("update_comments",
			batchOptions(
				mcp.WithDescription(`Rewrite the body of multiple existing Linear comments in one call. Each item needs a comment id and the new markdown body.`),
			)...,
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			req, err := decodeRequest(request, func(in *batch.CommentUpdateInput) batch.Item {
				return batch.Item{CommentUpdate: in}
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return runBatch(ctx, o, req)
		}
}
