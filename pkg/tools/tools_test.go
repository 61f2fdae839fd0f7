package tools

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
	"github.com/linearmcp/linear-mcp-go/pkg/linear"
)

type stubTracker struct {
	mu        sync.Mutex
	created   int
	lastInput map[string]interface{}
}

func (s *stubTracker) GetTeam(ctx context.Context, ref string) (*linear.Team, error) {
	return nil, fmt.Errorf("team not found: %s", ref)
}

func (s *stubTracker) ListTeams(ctx context.Context) ([]linear.Team, error) {
	return []linear.Team{{
		ID: "t-eng", Key: "ENG", Name: "Engineering",
		States: &linear.StateConnection{Nodes: []linear.WorkflowState{
			{ID: "st-1", Name: "Todo", Type: "unstarted"},
		}},
	}}, nil
}

func (s *stubTracker) ListProjects(ctx context.Context, first int) ([]linear.Project, error) {
	return []linear.Project{{ID: "p-1", Name: "Roadmap", State: "started"}}, nil
}

func (s *stubTracker) ListUsers(ctx context.Context) ([]linear.User, error) {
	return []linear.User{{ID: "u-1", Name: "Ada", Email: "ada@example.com"}}, nil
}

func (s *stubTracker) Viewer(ctx context.Context) (*linear.User, error) {
	return &linear.User{ID: "u-viewer"}, nil
}

func (s *stubTracker) ListCycles(ctx context.Context, teamID string) ([]linear.Cycle, error) {
	return nil, nil
}

func (s *stubTracker) GetIssue(ctx context.Context, ref string) (*linear.Issue, error) {
	return &linear.Issue{ID: "is-1", Identifier: ref, Title: "A bug"}, nil
}

func (s *stubTracker) ListIssues(ctx context.Context, filter linear.IssueFilter) ([]linear.Issue, error) {
	return []linear.Issue{{ID: "is-1", Identifier: "ENG-1", Title: "A bug"}}, nil
}

func (s *stubTracker) CreateIssue(ctx context.Context, input map[string]interface{}) (*linear.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	s.lastInput = input
	return &linear.Issue{ID: fmt.Sprintf("is-%d", s.created), Identifier: fmt.Sprintf("ENG-%d", s.created)}, nil
}

func (s *stubTracker) UpdateIssue(ctx context.Context, issueID string, input map[string]interface{}) (*linear.Issue, error) {
	return &linear.Issue{ID: issueID, Identifier: issueID}, nil
}

func (s *stubTracker) CreateProject(ctx context.Context, input map[string]interface{}) (*linear.Project, error) {
	name, _ := input["name"].(string)
	return &linear.Project{ID: "p-new", Name: name}, nil
}

func (s *stubTracker) UpdateProject(ctx context.Context, projectID string, input map[string]interface{}) (*linear.Project, error) {
	return &linear.Project{ID: projectID}, nil
}

func (s *stubTracker) CreateComment(ctx context.Context, input map[string]interface{}) (*linear.Comment, error) {
	return &linear.Comment{ID: "cm-1"}, nil
}

func (s *stubTracker) UpdateComment(ctx context.Context, commentID string, input map[string]interface{}) (*linear.Comment, error) {
	return &linear.Comment{ID: commentID}, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func testOptions() batch.Options {
	return batch.Options{
		Retry:     batch.RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond},
		ItemDelay: time.Millisecond,
	}
}

func TestDecodeRequest(t *testing.T) {
	req := callRequest(map[string]any{
		"items": []any{
			map[string]any{"team": "ENG", "title": "first"},
			map[string]any{"team": "ENG", "title": "second", "priority": "high"},
		},
		"dry_run":  true,
		"parallel": true,
	})

	decoded, err := decodeRequest(req, func(in *batch.IssueCreateInput) batch.Item {
		return batch.Item{IssueCreate: in}
	})
	require.NoError(t, err)

	require.Len(t, decoded.Items, 2)
	assert.True(t, decoded.DryRun)
	assert.True(t, decoded.Parallel)
	assert.Equal(t, "first", decoded.Items[0].IssueCreate.Title)
	assert.Equal(t, "high", decoded.Items[1].IssueCreate.Priority)
}

func TestDecodeRequestMissingItems(t *testing.T) {
	_, err := decodeRequest(callRequest(map[string]any{}), func(in *batch.IssueCreateInput) batch.Item {
		return batch.Item{IssueCreate: in}
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items is required")
}

func TestCreateIssuesTool(t *testing.T) {
	tracker := &stubTracker{}
	orc := batch.NewOrchestrator(tracker, zerolog.Nop(), testOptions())
	tool, handler := CreateIssues(orc)

	assert.Equal(t, "create_issues", tool.Name)

	result, err := handler(context.Background(), callRequest(map[string]any{
		"items": []any{
			map[string]any{"team": "ENG", "title": "first"},
			map[string]any{"team": "ENG", "title": "second"},
		},
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	out, ok := result.StructuredContent.(*batch.Outcome)
	require.True(t, ok)
	assert.Equal(t, 2, out.Summary.Succeeded)
	assert.Equal(t, 2, tracker.created)
}

func TestCreateIssuesToolEmptyBatch(t *testing.T) {
	tracker := &stubTracker{}
	orc := batch.NewOrchestrator(tracker, zerolog.Nop(), testOptions())
	_, handler := CreateIssues(orc)

	result, err := handler(context.Background(), callRequest(map[string]any{
		"items": []any{},
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCreateIssuesToolDryRun(t *testing.T) {
	tracker := &stubTracker{}
	orc := batch.NewOrchestrator(tracker, zerolog.Nop(), testOptions())
	_, handler := CreateIssues(orc)

	result, err := handler(context.Background(), callRequest(map[string]any{
		"items":   []any{map[string]any{"team": "ENG", "title": "first"}},
		"dry_run": true,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 0, tracker.created)
}

func TestGetIssueTool(t *testing.T) {
	tool, handler := GetIssue(&stubTracker{})
	assert.Equal(t, "get_issue", tool.Name)

	result, err := handler(context.Background(), callRequest(map[string]any{
		"issue": "https://linear.app/acme/issue/ENG-42",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	issue, ok := result.StructuredContent.(*linear.Issue)
	require.True(t, ok)
	assert.Equal(t, "ENG-42", issue.Identifier)
}

func TestListTeamsTool(t *testing.T) {
	_, handler := ListTeams(&stubTracker{})

	result, err := handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestListIssuesTool(t *testing.T) {
	_, handler := ListIssues(&stubTracker{})

	result, err := handler(context.Background(), callRequest(map[string]any{
		"state_type": "started",
		"limit":      float64(10),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer(&stubTracker{}, testOptions(), "test", zerolog.Nop())
	require.NotNil(t, s)
}
