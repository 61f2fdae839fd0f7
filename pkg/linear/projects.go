package linear

import (
	"context"
	"fmt"
)

const projectFields = `
	id
	name
	description
	url
	state
	targetDate
	lead {
		id
		name
		displayName
		email
	}`

// CreateProject creates a project. The input map carries
// ProjectCreateInput fields (name, teamIds, and optional resolved ids).
func (c *Client) CreateProject(ctx context.Context, input map[string]interface{}) (*Project, error) {
	mutation := fmt.Sprintf(`
		mutation CreateProject($input: ProjectCreateInput!) {
			projectCreate(input: $input) {
				success
				project {%s
				}
			}
		}`, projectFields)

	var result struct {
		ProjectCreate struct {
			Success bool    `json:"success"`
			Project Project `json:"project"`
		} `json:"projectCreate"`
	}

	if err := c.query(ctx, mutation, map[string]interface{}{"input": input}, &result); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if !result.ProjectCreate.Success {
		return nil, fmt.Errorf("project creation reported as unsuccessful")
	}
	return &result.ProjectCreate.Project, nil
}

// UpdateProject applies the given ProjectUpdateInput fields to a project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, input map[string]interface{}) (*Project, error) {
	mutation := fmt.Sprintf(`
		mutation UpdateProject($id: String!, $input: ProjectUpdateInput!) {
			projectUpdate(id: $id, input: $input) {
				success
				project {%s
				}
			}
		}`, projectFields)

	var result struct {
		ProjectUpdate struct {
			Success bool    `json:"success"`
			Project Project `json:"project"`
		} `json:"projectUpdate"`
	}

	vars := map[string]interface{}{"id": projectID, "input": input}
	if err := c.query(ctx, mutation, vars, &result); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if !result.ProjectUpdate.Success {
		return nil, fmt.Errorf("project update reported as unsuccessful")
	}
	return &result.ProjectUpdate.Project, nil
}

// ListProjects returns the first page (up to first) of workspace
// projects. Name resolution searches this page only.
func (c *Client) ListProjects(ctx context.Context, first int) ([]Project, error) {
	if first <= 0 || first > DefaultPageSize {
		first = DefaultPageSize
	}

	query := fmt.Sprintf(`
		query Projects($first: Int!) {
			projects(first: $first) {
				nodes {%s
				}
				pageInfo {
					hasNextPage
					endCursor
				}
			}
		}`, projectFields)

	var result struct {
		Projects struct {
			Nodes    []Project `json:"nodes"`
			PageInfo PageInfo  `json:"pageInfo"`
		} `json:"projects"`
	}

	if err := c.query(ctx, query, map[string]interface{}{"first": first}, &result); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return result.Projects.Nodes, nil
}
