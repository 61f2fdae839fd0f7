package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
	"github.com/linearmcp/linear-mcp-go/pkg/linear"
)

// ListTeams creates a tool that lists workspace teams with their states
// and labels, for discovering valid references before a batch call.
func ListTeams(client batch.TrackerClient) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("list_teams",
			mcp.WithDescription("List Linear teams with their keys, workflow states and labels. Use this to find valid team, state and label references for the batch tools."),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			teams, err := client.ListTeams(ctx)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var b strings.Builder
			for _, t := range teams {
				fmt.Fprintf(&b, "%s (%s) id=%s\n", t.Name, t.Key, t.ID)
				if t.States != nil {
					for _, s := range t.States.Nodes {
						fmt.Fprintf(&b, "  state: %s [%s]\n", s.Name, s.Type)
					}
				}
				if t.Labels != nil {
					for _, l := range t.Labels.Nodes {
						fmt.Fprintf(&b, "  label: %s\n", l.Name)
					}
				}
			}
			return mcp.NewToolResultStructured(map[string]any{"teams": teams}, b.String()), nil
		}
}

// ListProjects creates a tool that lists workspace projects.
func ListProjects(client batch.TrackerClient) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("list_projects",
			mcp.WithDescription("List Linear projects with their ids, states and leads."),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projects, err := client.ListProjects(ctx, linear.DefaultPageSize)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var b strings.Builder
			for _, p := range projects {
				fmt.Fprintf(&b, "%s [%s] id=%s\n", p.Name, p.State, p.ID)
			}
			return mcp.NewToolResultStructured(map[string]any{"projects": projects}, b.String()), nil
		}
}

// ListUsers creates a tool that lists workspace members.
func ListUsers(client batch.TrackerClient) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("list_users",
			mcp.WithDescription("List Linear workspace members with their ids, names and emails. Use this to find valid assignee references."),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			users, err := client.ListUsers(ctx)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var b strings.Builder
			for _, u := range users {
				fmt.Fprintf(&b, "%s <%s> id=%s\n", u.Name, u.Email, u.ID)
			}
			return mcp.NewToolResultStructured(map[string]any{"users": users}, b.String()), nil
		}
}

// ListIssues creates a tool that lists issues with optional filters.
func ListIssues(client Client) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("list_issues",
			mcp.WithDescription("List Linear issues, optionally filtered by team id, assignee id or state type. Returns at most one page."),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
			mcp.WithString("team_id",
				mcp.Description("Only issues belonging to this team id"),
			),
			mcp.WithString("assignee_id",
				mcp.Description("Only issues assigned to this user id"),
			),
			mcp.WithString("state_type",
				mcp.Description("Only issues whose state has this type"),
				mcp.Enum(linear.StateTypes...),
			),
			mcp.WithNumber("limit",
				mcp.Description(fmt.Sprintf("Maximum number of issues to return, up to %d", linear.DefaultPageSize)),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			filter := linear.IssueFilter{}
			filter.TeamID, _ = args["team_id"].(string)
			filter.AssigneeID, _ = args["assignee_id"].(string)
			filter.StateType, _ = args["state_type"].(string)
			if limit, ok := args["limit"].(float64); ok {
				filter.Limit = int(limit)
			}

			issues, err := client.ListIssues(ctx, filter)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var b strings.Builder
			for _, is := range issues {
				state := ""
				if is.State != nil {
					state = is.State.Name
				}
				fmt.Fprintf(&b, "%s [%s] %s\n", is.Identifier, state, is.Title)
			}
			return mcp.NewToolResultStructured(map[string]any{"issues": issues}, b.String()), nil
		}
}

// GetIssue creates a tool that fetches one issue by any reference.
func GetIssue(client batch.TrackerClient) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue",
			mcp.WithDescription("Fetch one Linear issue by id, identifier (ENG-123) or issue URL."),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
			mcp.WithString("issue",
				mcp.Required(),
				mcp.Description("Issue id, identifier or URL"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ref, err := request.RequireString("issue")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			issue, err := client.GetIssue(ctx, linear.NormalizeIssueRef(ref))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s: %s\n", issue.Identifier, issue.Title)
			if issue.State != nil {
				fmt.Fprintf(&b, "state: %s\n", issue.State.Name)
			}
			if issue.Assignee != nil {
				fmt.Fprintf(&b, "assignee: %s\n", issue.Assignee.Name)
			}
			if issue.URL != "" {
				fmt.Fprintf(&b, "url: %s\n", issue.URL)
			}
			return mcp.NewToolResultStructured(issue, b.String()), nil
		}
}

func boolPtr(b bool) *bool {
	return &b
}
