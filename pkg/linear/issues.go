package linear

import (
	"context"
	"fmt"
)

// issueFields is the selection set shared by issue queries and mutations.
const issueFields = `
	id
	identifier
	title
	description
	url
	priority
	estimate
	dueDate
	state {
		id
		name
		type
	}
	assignee {
		id
		name
		displayName
		email
	}
	labels {
		nodes {
			id
			name
		}
	}
	project {
		id
		name
	}
	team {
		id
		key
		name
	}
	parent {
		id
		identifier
	}
	createdAt
	updatedAt`

// CreateIssue creates an issue. The input map carries IssueCreateInput
// fields (teamId, title, and any optional resolved ids).
func (c *Client) CreateIssue(ctx context.Context, input map[string]interface{}) (*Issue, error) {
	mutation := fmt.Sprintf(`
		mutation CreateIssue($input: IssueCreateInput!) {
			issueCreate(input: $input) {
				success
				issue {%s
				}
			}
		}`, issueFields)

	var result struct {
		IssueCreate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueCreate"`
	}

	if err := c.query(ctx, mutation, map[string]interface{}{"input": input}, &result); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	if !result.IssueCreate.Success {
		return nil, fmt.Errorf("issue creation reported as unsuccessful")
	}
	return &result.IssueCreate.Issue, nil
}

// UpdateIssue applies the given IssueUpdateInput fields to an issue.
func (c *Client) UpdateIssue(ctx context.Context, issueID string, input map[string]interface{}) (*Issue, error) {
	mutation := fmt.Sprintf(`
		mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
			issueUpdate(id: $id, input: $input) {
				success
				issue {%s
				}
			}
		}`, issueFields)

	var result struct {
		IssueUpdate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueUpdate"`
	}

	vars := map[string]interface{}{"id": issueID, "input": input}
	if err := c.query(ctx, mutation, vars, &result); err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}
	if !result.IssueUpdate.Success {
		return nil, fmt.Errorf("issue update reported as unsuccessful")
	}
	return &result.IssueUpdate.Issue, nil
}

// GetIssue fetches a single issue. The ref may be a UUID or a
// human-facing identifier like "ENG-123"; the API accepts both.
func (c *Client) GetIssue(ctx context.Context, ref string) (*Issue, error) {
	query := fmt.Sprintf(`
		query Issue($id: String!) {
			issue(id: $id) {%s
			}
		}`, issueFields)

	var result struct {
		Issue *Issue `json:"issue"`
	}

	if err := c.query(ctx, query, map[string]interface{}{"id": ref}, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch issue %s: %w", ref, err)
	}
	if result.Issue == nil || result.Issue.ID == "" {
		return nil, fmt.Errorf("issue not found: %s", ref)
	}
	return result.Issue, nil
}

// IssueFilter bounds an issue listing.
type IssueFilter struct {
	TeamID     string
	AssigneeID string
	StateType  string
	Limit      int
}

// ListIssues returns a single page of issues matching the filter, newest
// first.
func (c *Client) ListIssues(ctx context.Context, filter IssueFilter) ([]Issue, error) {
	limit := filter.Limit
	if limit <= 0 || limit > DefaultPageSize {
		limit = DefaultPageSize
	}

	where := map[string]interface{}{}
	if filter.TeamID != "" {
		where["team"] = map[string]interface{}{"id": map[string]interface{}{"eq": filter.TeamID}}
	}
	if filter.AssigneeID != "" {
		where["assignee"] = map[string]interface{}{"id": map[string]interface{}{"eq": filter.AssigneeID}}
	}
	if filter.StateType != "" {
		where["state"] = map[string]interface{}{"type": map[string]interface{}{"eq": filter.StateType}}
	}

	query := fmt.Sprintf(`
		query Issues($first: Int!, $filter: IssueFilter) {
			issues(first: $first, filter: $filter, orderBy: updatedAt) {
				nodes {%s
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}`, issueFields)

	var result struct {
		Issues struct {
			Nodes    []Issue  `json:"nodes"`
			PageInfo PageInfo `json:"pageInfo"`
		} `json:"issues"`
	}

	vars := map[string]interface{}{"first": limit, "filter": where}
	if err := c.query(ctx, query, vars, &result); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return result.Issues.Nodes, nil
}
