// Package linear is a thin client for the Linear GraphQL API. It covers
// the operations the batch tools need: create/update/fetch for issues,
// projects and comments, bounded listings of workspace metadata, and the
// current-identity lookup. Transport concerns (timeouts, auth header,
// GraphQL error folding) live here; callers see typed models and plain
// errors.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the Linear GraphQL API endpoint.
	DefaultEndpoint = "https://api.linear.app/graphql"

	defaultTimeout = 30 * time.Second

	// DefaultPageSize bounds listing queries. Resolvers search a single
	// page; they never paginate the whole workspace.
	DefaultPageSize = 100
)

// Client talks to the Linear GraphQL API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client authenticating with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// WithEndpoint overrides the API endpoint. Used by tests and self-hosted
// proxies.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// GraphQLRequest represents a GraphQL request payload.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a generic GraphQL response.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a single GraphQL error.
type GraphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions,omitempty"`
}

// execute sends a GraphQL request and decodes the envelope. GraphQL-level
// errors are folded into the returned error; retry and rate-limit policy
// belong to the caller.
func (c *Client) execute(ctx context.Context, req *GraphQLRequest) (*GraphQLResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limit exceeded: %s", strings.TrimSpace(string(respBody)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error: %s (status %d)", strings.TrimSpace(string(respBody)), resp.StatusCode)
	}

	var gqlResp GraphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("GraphQL errors: %s", strings.Join(msgs, "; "))
	}

	return &gqlResp, nil
}

// query executes a request and unmarshals the data payload into result.
func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	resp, err := c.execute(ctx, &GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, result); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}
