package linear

import (
	"context"
	"fmt"
)

const teamFields = `
	id
	key
	name
	issueEstimationAllowZero
	cyclesEnabled
	states {
		nodes {
			id
			name
			type
		}
	}
	labels {
		nodes {
			id
			name
		}
	}`

// GetTeam fetches a team with its workflow states, labels and estimation
// settings. The ref must be a team UUID.
func (c *Client) GetTeam(ctx context.Context, ref string) (*Team, error) {
	query := fmt.Sprintf(`
		query Team($id: String!) {
			team(id: $id) {%s
			}
		}`, teamFields)

	var result struct {
		Team *Team `json:"team"`
	}

	if err := c.query(ctx, query, map[string]interface{}{"id": ref}, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch team %s: %w", ref, err)
	}
	if result.Team == nil || result.Team.ID == "" {
		return nil, fmt.Errorf("team not found: %s", ref)
	}
	return result.Team, nil
}

// ListTeams lists workspace teams with their states and labels.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	query := fmt.Sprintf(`
		query Teams($first: Int!) {
			teams(first: $first) {
				nodes {%s
				}
			}
		}`, teamFields)

	var result struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}

	if err := c.query(ctx, query, map[string]interface{}{"first": DefaultPageSize}, &result); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return result.Teams.Nodes, nil
}

// ListUsers lists workspace members.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	query := `
		query Users($first: Int!) {
			users(first: $first) {
				nodes {
					id
					name
					displayName
					email
				}
			}
		}`

	var result struct {
		Users struct {
			Nodes []User `json:"nodes"`
		} `json:"users"`
	}

	if err := c.query(ctx, query, map[string]interface{}{"first": DefaultPageSize}, &result); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return result.Users.Nodes, nil
}

// ListCycles lists a team's cycles.
func (c *Client) ListCycles(ctx context.Context, teamID string) ([]Cycle, error) {
	query := `
		query Cycles($teamId: String!, $first: Int!) {
			team(id: $teamId) {
				cycles(first: $first) {
					nodes {
						id
						number
						name
						startsAt
						endsAt
					}
				}
			}
		}`

	var result struct {
		Team struct {
			Cycles struct {
				Nodes []Cycle `json:"nodes"`
			} `json:"cycles"`
		} `json:"team"`
	}

	vars := map[string]interface{}{"teamId": teamID, "first": DefaultPageSize}
	if err := c.query(ctx, query, vars, &result); err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	return result.Team.Cycles.Nodes, nil
}

// Viewer returns the identity the API key authenticates as.
func (c *Client) Viewer(ctx context.Context) (*User, error) {
	query := `
		query Viewer {
			viewer {
				id
				name
				displayName
				email
			}
		}`

	var result struct {
		Viewer *User `json:"viewer"`
	}

	if err := c.query(ctx, query, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch viewer: %w", err)
	}
	if result.Viewer == nil || result.Viewer.ID == "" {
		return nil, fmt.Errorf("viewer lookup returned no identity")
	}
	return result.Viewer, nil
}
