package linear

import (
	"context"
	"fmt"
)

const commentFields = `
	id
	body
	url
	issue {
		id
		identifier
	}`

// CreateComment adds a comment to an issue. The input map carries
// CommentCreateInput fields (issueId, body).
func (c *Client) CreateComment(ctx context.Context, input map[string]interface{}) (*Comment, error) {
	mutation := fmt.Sprintf(`
		mutation CreateComment($input: CommentCreateInput!) {
			commentCreate(input: $input) {
				success
				comment {%s
				}
			}
		}`, commentFields)

	var result struct {
		CommentCreate struct {
			Success bool    `json:"success"`
			Comment Comment `json:"comment"`
		} `json:"commentCreate"`
	}

	if err := c.query(ctx, mutation, map[string]interface{}{"input": input}, &result); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if !result.CommentCreate.Success {
		return nil, fmt.Errorf("comment creation reported as unsuccessful")
	}
	return &result.CommentCreate.Comment, nil
}

// UpdateComment replaces the body of an existing comment.
func (c *Client) UpdateComment(ctx context.Context, commentID string, input map[string]interface{}) (*Comment, error) {
	mutation := fmt.Sprintf(`
		mutation UpdateComment($id: String!, $input: CommentUpdateInput!) {
			commentUpdate(id: $id, input: $input) {
				success
				comment {%s
				}
			}
		}`, commentFields)

	var result struct {
		CommentUpdate struct {
			Success bool    `json:"success"`
			Comment Comment `json:"comment"`
		} `json:"commentUpdate"`
	}

	vars := map[string]interface{}{"id": commentID, "input": input}
	if err := c.query(ctx, mutation, vars, &result); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if !result.CommentUpdate.Success {
		return nil, fmt.Errorf("comment update reported as unsuccessful")
	}
	return &result.CommentUpdate.Comment, nil
}
