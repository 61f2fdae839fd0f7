package linear

// WorkflowState represents a named, typed status an issue can hold.
// Type is one of "backlog", "unstarted", "started", "completed", "canceled".
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// StateTypes lists the workflow state types Linear defines, in lifecycle order.
var StateTypes = []string{"backlog", "unstarted", "started", "completed", "canceled"}

// User represents a workspace member.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Label represents an issue label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LabelConnection wraps the nodes array for labels.
type LabelConnection struct {
	Nodes []Label `json:"nodes"`
}

// StateConnection wraps the nodes array for workflow states.
type StateConnection struct {
	Nodes []WorkflowState `json:"nodes"`
}

// Team represents a team, including the metadata the resolvers need.
type Team struct {
	ID     string           `json:"id"`
	Key    string           `json:"key"`
	Name   string           `json:"name"`
	States *StateConnection `json:"states,omitempty"`
	Labels *LabelConnection `json:"labels,omitempty"`

	// IssueEstimationAllowZero reports whether the team accepts a zero
	// estimate on issues.
	IssueEstimationAllowZero bool `json:"issueEstimationAllowZero"`
	CyclesEnabled            bool `json:"cyclesEnabled"`
}

// ProjectRef is the minimal project shape embedded in an issue.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project represents a project.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	State       string `json:"state"`
	TargetDate  string `json:"targetDate,omitempty"`
	Lead        *User  `json:"lead,omitempty"`
}

// Cycle represents a team cycle.
type Cycle struct {
	ID       string  `json:"id"`
	Number   float64 `json:"number"`
	Name     string  `json:"name"`
	StartsAt string  `json:"startsAt"`
	EndsAt   string  `json:"endsAt"`
}

// IssueParent is a parent issue reference.
type IssueParent struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

// Issue represents an issue, e.g. "ENG-123".
type Issue struct {
	ID          string           `json:"id"`
	Identifier  string           `json:"identifier"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	Priority    int              `json:"priority"` // 0=none, 1=urgent, 2=high, 3=normal, 4=low
	Estimate    *float64         `json:"estimate,omitempty"`
	DueDate     string           `json:"dueDate,omitempty"`
	State       *WorkflowState   `json:"state,omitempty"`
	Assignee    *User            `json:"assignee,omitempty"`
	Labels      *LabelConnection `json:"labels,omitempty"`
	Project     *ProjectRef      `json:"project,omitempty"`
	Team        *Team            `json:"team,omitempty"`
	Parent      *IssueParent     `json:"parent,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

// Comment represents an issue comment.
type Comment struct {
	ID    string `json:"id"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Issue *struct {
		ID         string `json:"id"`
		Identifier string `json:"identifier"`
	} `json:"issue,omitempty"`
}

// PageInfo carries cursor pagination state.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}
