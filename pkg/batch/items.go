package batch

import (
	"fmt"
)

// Batch size bounds.
const (
	MinItems = 1
	MaxItems = 50
)

// Kind identifies which operation a batch performs. All items in one
// request share the same kind.
type Kind string

const (
	KindIssueCreate   Kind = "issue_create"
	KindIssueUpdate   Kind = "issue_update"
	KindProjectCreate Kind = "project_create"
	KindProjectUpdate Kind = "project_update"
	KindCommentCreate Kind = "comment_create"
	KindCommentUpdate Kind = "comment_update"
)

// IssueCreateInput describes one issue to create. Resolvable fields come
// in id/name pairs; when both are supplied the id wins.
type IssueCreateInput struct {
	TeamID      string   `yaml:"team_id,omitempty" json:"teamId,omitempty"`
	Team        string   `yaml:"team,omitempty" json:"team,omitempty"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Priority    any      `yaml:"priority,omitempty" json:"priority,omitempty"`
	StateID     string   `yaml:"state_id,omitempty" json:"stateId,omitempty"`
	State       string   `yaml:"state,omitempty" json:"state,omitempty"`
	LabelIDs    []string `yaml:"label_ids,omitempty" json:"labelIds,omitempty"`
	Labels      []string `yaml:"labels,omitempty" json:"labels,omitempty"`
	ProjectID   string   `yaml:"project_id,omitempty" json:"projectId,omitempty"`
	Project     string   `yaml:"project,omitempty" json:"project,omitempty"`
	AssigneeID  string   `yaml:"assignee_id,omitempty" json:"assigneeId,omitempty"`
	Assignee    string   `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Estimate    *float64 `yaml:"estimate,omitempty" json:"estimate,omitempty"`
	DueDate     string   `yaml:"due_date,omitempty" json:"dueDate,omitempty"`
	Parent      string   `yaml:"parent,omitempty" json:"parent,omitempty"`
	Cycle       string   `yaml:"cycle,omitempty" json:"cycle,omitempty"`
}

// IssueUpdateInput describes one issue update. Issue accepts a UUID, an
// identifier like "ENG-123", or an issue URL.
type IssueUpdateInput struct {
	Issue       string   `yaml:"issue" json:"issue"`
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description *string  `yaml:"description,omitempty" json:"description,omitempty"`
	Priority    any      `yaml:"priority,omitempty" json:"priority,omitempty"`
	StateID     string   `yaml:"state_id,omitempty" json:"stateId,omitempty"`
	State       string   `yaml:"state,omitempty" json:"state,omitempty"`
	LabelIDs    []string `yaml:"label_ids,omitempty" json:"labelIds,omitempty"`
	Labels      []string `yaml:"labels,omitempty" json:"labels,omitempty"`
	ProjectID   string   `yaml:"project_id,omitempty" json:"projectId,omitempty"`
	Project     string   `yaml:"project,omitempty" json:"project,omitempty"`
	AssigneeID  string   `yaml:"assignee_id,omitempty" json:"assigneeId,omitempty"`
	Assignee    string   `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Estimate    *float64 `yaml:"estimate,omitempty" json:"estimate,omitempty"`
	DueDate     string   `yaml:"due_date,omitempty" json:"dueDate,omitempty"`
	Cycle       string   `yaml:"cycle,omitempty" json:"cycle,omitempty"`
}

// ProjectCreateInput describes one project to create.
type ProjectCreateInput struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	TeamID      string `yaml:"team_id,omitempty" json:"teamId,omitempty"`
	Team        string `yaml:"team,omitempty" json:"team,omitempty"`
	LeadID      string `yaml:"lead_id,omitempty" json:"leadId,omitempty"`
	Lead        string `yaml:"lead,omitempty" json:"lead,omitempty"`
	State       string `yaml:"state,omitempty" json:"state,omitempty"`
	TargetDate  string `yaml:"target_date,omitempty" json:"targetDate,omitempty"`
}

// ProjectUpdateInput describes one project update. Project accepts a
// UUID or a project name.
type ProjectUpdateInput struct {
	Project     string  `yaml:"project" json:"project"`
	Name        string  `yaml:"name,omitempty" json:"name,omitempty"`
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
	LeadID      string  `yaml:"lead_id,omitempty" json:"leadId,omitempty"`
	Lead        string  `yaml:"lead,omitempty" json:"lead,omitempty"`
	State       string  `yaml:"state,omitempty" json:"state,omitempty"`
	TargetDate  string  `yaml:"target_date,omitempty" json:"targetDate,omitempty"`
}

// CommentCreateInput adds one comment to an issue.
type CommentCreateInput struct {
	Issue string `yaml:"issue" json:"issue"`
	Body  string `yaml:"body" json:"body"`
}

// CommentUpdateInput rewrites the body of one existing comment.
type CommentUpdateInput struct {
	Comment string `yaml:"comment" json:"comment"`
	Body    string `yaml:"body" json:"body"`
}

// Item is a tagged variant: exactly one of the operation inputs is set.
type Item struct {
	IssueCreate   *IssueCreateInput   `yaml:"issue_create,omitempty" json:"issueCreate,omitempty"`
	IssueUpdate   *IssueUpdateInput   `yaml:"issue_update,omitempty" json:"issueUpdate,omitempty"`
	ProjectCreate *ProjectCreateInput `yaml:"project_create,omitempty" json:"projectCreate,omitempty"`
	ProjectUpdate *ProjectUpdateInput `yaml:"project_update,omitempty" json:"projectUpdate,omitempty"`
	CommentCreate *CommentCreateInput `yaml:"comment_create,omitempty" json:"commentCreate,omitempty"`
	CommentUpdate *CommentUpdateInput `yaml:"comment_update,omitempty" json:"commentUpdate,omitempty"`
}

// Kind returns which variant is set, or an error when zero or more than
// one is.
func (it Item) Kind() (Kind, error) {
	var kinds []Kind
	if it.IssueCreate != nil {
		kinds = append(kinds, KindIssueCreate)
	}
	if it.IssueUpdate != nil {
		kinds = append(kinds, KindIssueUpdate)
	}
	if it.ProjectCreate != nil {
		kinds = append(kinds, KindProjectCreate)
	}
	if it.ProjectUpdate != nil {
		kinds = append(kinds, KindProjectUpdate)
	}
	if it.CommentCreate != nil {
		kinds = append(kinds, KindCommentCreate)
	}
	if it.CommentUpdate != nil {
		kinds = append(kinds, KindCommentUpdate)
	}
	switch len(kinds) {
	case 0:
		return "", fmt.Errorf("item specifies no operation")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("item specifies %d operations, want exactly one", len(kinds))
	}
}

// Request is a validated multi-item call.
type Request struct {
	Items    []Item `yaml:"items" json:"items"`
	DryRun   bool   `yaml:"dry_run,omitempty" json:"dryRun,omitempty"`
	Parallel bool   `yaml:"parallel,omitempty" json:"parallel,omitempty"`
}

// Validate checks batch-level shape before any resolution or remote call:
// item count within bounds, every item tagged with exactly one operation,
// and per-kind required fields present.
func (r *Request) Validate() error {
	if len(r.Items) < MinItems || len(r.Items) > MaxItems {
		return fmt.Errorf("batch must contain %d-%d items, got %d", MinItems, MaxItems, len(r.Items))
	}
	for i, item := range r.Items {
		kind, err := item.Kind()
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if err := validateItem(kind, item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func validateItem(kind Kind, item Item) error {
	switch kind {
	case KindIssueCreate:
		in := item.IssueCreate
		if in.Title == "" {
			return fmt.Errorf("title is required")
		}
		if in.TeamID == "" && in.Team == "" {
			return fmt.Errorf("team or team_id is required")
		}
	case KindIssueUpdate:
		if item.IssueUpdate.Issue == "" {
			return fmt.Errorf("issue is required")
		}
	case KindProjectCreate:
		if item.ProjectCreate.Name == "" {
			return fmt.Errorf("name is required")
		}
	case KindProjectUpdate:
		if item.ProjectUpdate.Project == "" {
			return fmt.Errorf("project is required")
		}
	case KindCommentCreate:
		in := item.CommentCreate
		if in.Issue == "" {
			return fmt.Errorf("issue is required")
		}
		if in.Body == "" {
			return fmt.Errorf("body is required")
		}
	case KindCommentUpdate:
		in := item.CommentUpdate
		if in.Comment == "" {
			return fmt.Errorf("comment is required")
		}
		if in.Body == "" {
			return fmt.Errorf("body is required")
		}
	}
	return nil
}
