package batch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/linearmcp/linear-mcp-go/pkg/linear"
	"github.com/linearmcp/linear-mcp-go/pkg/resolve"
	"github.com/linearmcp/linear-mcp-go/pkg/utils"
)

// DefaultItemDelay is the pause between dispatches in sequential mode.
const DefaultItemDelay = 100 * time.Millisecond

// TrackerClient is everything the orchestrator needs from the tracker:
// the resolver's metadata reads plus the per-kind mutations.
type TrackerClient interface {
	resolve.MetadataClient
	CreateIssue(ctx context.Context, input map[string]interface{}) (*linear.Issue, error)
	UpdateIssue(ctx context.Context, issueID string, input map[string]interface{}) (*linear.Issue, error)
	GetIssue(ctx context.Context, ref string) (*linear.Issue, error)
	CreateProject(ctx context.Context, input map[string]interface{}) (*linear.Project, error)
	UpdateProject(ctx context.Context, projectID string, input map[string]interface{}) (*linear.Project, error)
	CreateComment(ctx context.Context, input map[string]interface{}) (*linear.Comment, error)
	UpdateComment(ctx context.Context, commentID string, input map[string]interface{}) (*linear.Comment, error)
	ListCycles(ctx context.Context, teamID string) ([]linear.Cycle, error)
}

// Options tunes one orchestrator. Zero values fall back to defaults.
type Options struct {
	Concurrency int
	Retry       RetryPolicy
	ItemDelay   time.Duration
}

// Orchestrator drives multi-item batches: per item it resolves
// references, executes the mutating call under gate and retry, and
// collects index-ordered results.
type Orchestrator struct {
	client    TrackerClient
	resolver  *resolve.Resolver
	gate      *Gate
	retry     RetryPolicy
	itemDelay time.Duration
	log       zerolog.Logger
}

// NewOrchestrator builds an orchestrator around the given tracker client.
func NewOrchestrator(client TrackerClient, log zerolog.Logger, opts Options) *Orchestrator {
	if opts.Retry == (RetryPolicy{}) {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.ItemDelay <= 0 {
		opts.ItemDelay = DefaultItemDelay
	}
	return &Orchestrator{
		client:    client,
		resolver:  resolve.New(client, log),
		gate:      NewGate(opts.Concurrency),
		retry:     opts.Retry,
		itemDelay: opts.ItemDelay,
		log:       log,
	}
}

// Run executes one batch. Batch-level shape errors are returned as a
// hard error before anything is dispatched; per-item failures never
// escape as errors and are reported via the outcome.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]ItemResult, len(req.Items))

	if req.DryRun {
		for i := range req.Items {
			results[i] = ItemResult{Index: i, Success: true}
		}
		return &Outcome{Results: results, Summary: summarize(results), DryRun: true}, nil
	}

	r := &batchRun{o: o, parallel: req.Parallel, teams: make(map[string]*linear.Team)}
	o.log.Debug().Int("items", len(req.Items)).Bool("parallel", req.Parallel).Msg("starting batch")

	if req.Parallel {
		var wg sync.WaitGroup
		for i := range req.Items {
			kind, _ := req.Items[i].Kind()
			if err := ctx.Err(); err != nil {
				results[i] = failedItem(i, Classify(kind, err))
				continue
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = r.processItem(ctx, i, req.Items[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range req.Items {
			if i > 0 {
				select {
				case <-time.After(o.itemDelay):
				case <-ctx.Done():
				}
			}
			kind, _ := req.Items[i].Kind()
			if err := ctx.Err(); err != nil {
				results[i] = failedItem(i, Classify(kind, err))
				continue
			}
			results[i] = r.processItem(ctx, i, req.Items[i])
		}
	}

	summary := summarize(results)
	o.log.Debug().Int("succeeded", summary.Succeeded).Int("failed", summary.Failed).Msg("batch done")
	return &Outcome{Results: results, Summary: summary}, nil
}

// batchRun holds per-batch state: the team-settings cache and the lazily
// resolved viewer id. Discarded when the batch completes.
type batchRun struct {
	o        *Orchestrator
	parallel bool

	mu        sync.Mutex
	teams     map[string]*linear.Team
	viewerID  string
	viewerErr *resolve.Failure
}

func failedItem(idx int, e *ItemError) ItemResult {
	return ItemResult{Index: idx, Error: e}
}

func (r *batchRun) processItem(ctx context.Context, idx int, item Item) ItemResult {
	switch {
	case item.IssueCreate != nil:
		return r.createIssue(ctx, idx, item.IssueCreate)
	case item.IssueUpdate != nil:
		return r.updateIssue(ctx, idx, item.IssueUpdate)
	case item.ProjectCreate != nil:
		return r.createProject(ctx, idx, item.ProjectCreate)
	case item.ProjectUpdate != nil:
		return r.updateProject(ctx, idx, item.ProjectUpdate)
	case item.CommentCreate != nil:
		return r.createComment(ctx, idx, item.CommentCreate)
	default:
		return r.updateComment(ctx, idx, item.CommentUpdate)
	}
}

// execute wraps the single mutating call per item: retried per policy,
// each attempt admitted through the gate unless the batch runs parallel.
func (r *batchRun) execute(ctx context.Context, op func() error) error {
	task := op
	if !r.parallel {
		task = func() error { return r.o.gate.Do(ctx, op) }
	}
	return withRetry(r.o.retry, task)
}

// team resolves and caches a team by any reference (id, key, name) for
// the remainder of the batch.
func (r *batchRun) team(ctx context.Context, ref string) (*linear.Team, *resolve.Failure) {
	key := strings.ToLower(strings.TrimSpace(ref))

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.teams[key]; ok {
		return t, nil
	}
	res := r.o.resolver.Team(ctx, ref)
	if !res.OK() {
		return nil, res.Err
	}
	t := res.Value
	r.teams[key] = t
	r.teams[strings.ToLower(t.ID)] = t
	return t, nil
}

// viewer resolves the authenticated user's id once per batch.
func (r *batchRun) viewer(ctx context.Context) (string, *resolve.Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.viewerID != "" {
		return r.viewerID, nil
	}
	if r.viewerErr != nil {
		return "", r.viewerErr
	}
	res := r.o.resolver.Viewer(ctx)
	if !res.OK() {
		r.viewerErr = res.Err
		return "", res.Err
	}
	r.viewerID = res.Value
	return r.viewerID, nil
}

func (r *batchRun) cycleID(ctx context.Context, team *linear.Team, ref string) (string, *resolve.Failure) {
	if !team.CyclesEnabled {
		return "", &resolve.Failure{
			Code:    resolve.CodeCyclesDisabled,
			Message: fmt.Sprintf("cycles are not enabled for team %s", team.Name),
		}
	}
	cycles, err := r.o.client.ListCycles(ctx, team.ID)
	if err != nil {
		return "", &resolve.Failure{
			Code:    resolve.CodeNotFound,
			Message: fmt.Sprintf("failed to list cycles: %v", err),
		}
	}
	for _, c := range cycles {
		if strings.EqualFold(c.Name, ref) || strconv.Itoa(int(c.Number)) == ref {
			return c.ID, nil
		}
	}
	names := make([]string, 0, len(cycles))
	for _, c := range cycles {
		if c.Name != "" {
			names = append(names, c.Name)
		} else {
			names = append(names, strconv.Itoa(int(c.Number)))
		}
	}
	return "", &resolve.Failure{
		Code:        resolve.CodeNotFound,
		Message:     fmt.Sprintf("cycle %q not found on team %s", ref, team.Name),
		Suggestions: names,
	}
}

// issueRefs carries the resolvable id/name field pairs shared by issue
// create and update items. Ids win over names when both are present.
type issueRefs struct {
	Priority   any
	StateID    string
	State      string
	LabelIDs   []string
	Labels     []string
	ProjectID  string
	Project    string
	AssigneeID string
	Assignee   string
	Estimate   *float64
	DueDate    string
	Cycle      string
}

// applyIssueRefs resolves every reference present in refs into the
// mutation input map. getTeam is invoked at most once, only when a field
// actually needs team metadata.
func (r *batchRun) applyIssueRefs(ctx context.Context, getTeam func() (*linear.Team, *resolve.Failure),
	refs issueRefs, input map[string]interface{}, detail map[string]string) *resolve.Failure {

	var team *linear.Team
	needTeam := func() (*linear.Team, *resolve.Failure) {
		if team != nil {
			return team, nil
		}
		t, ferr := getTeam()
		if ferr != nil {
			return nil, ferr
		}
		team = t
		return team, nil
	}

	if refs.Priority != nil {
		res := resolve.Priority(refs.Priority)
		if !res.OK() {
			return res.Err
		}
		input["priority"] = res.Value
	}

	switch {
	case refs.StateID != "":
		input["stateId"] = refs.StateID
	case refs.State != "":
		t, ferr := needTeam()
		if ferr != nil {
			return ferr
		}
		var states []linear.WorkflowState
		if t.States != nil {
			states = t.States.Nodes
		}
		res := resolve.State(states, refs.State)
		if !res.OK() {
			return res.Err
		}
		input["stateId"] = res.Value
		detail["state"] = refs.State
	}

	switch {
	case len(refs.LabelIDs) > 0:
		input["labelIds"] = refs.LabelIDs
	case len(refs.Labels) > 0:
		t, ferr := needTeam()
		if ferr != nil {
			return ferr
		}
		var labels []linear.Label
		if t.Labels != nil {
			labels = t.Labels.Nodes
		}
		res := resolve.Labels(labels, refs.Labels)
		if !res.OK() {
			return res.Err
		}
		input["labelIds"] = res.Value
		detail["labels"] = strings.Join(refs.Labels, ",")
	}

	switch {
	case refs.ProjectID != "":
		input["projectId"] = refs.ProjectID
	case refs.Project != "":
		res := r.o.resolver.Project(ctx, refs.Project)
		if !res.OK() {
			return res.Err
		}
		input["projectId"] = res.Value
		detail["project"] = refs.Project
	}

	switch {
	case refs.AssigneeID != "":
		input["assigneeId"] = refs.AssigneeID
	case refs.Assignee != "":
		res := r.o.resolver.Assignee(ctx, refs.Assignee)
		if !res.OK() {
			return res.Err
		}
		input["assigneeId"] = res.Value
		detail["assignee"] = refs.Assignee
	}

	if refs.Estimate != nil {
		t, ferr := needTeam()
		if ferr != nil {
			return ferr
		}
		if *refs.Estimate == 0 && !t.IssueEstimationAllowZero {
			return &resolve.Failure{
				Code:    resolve.CodeValidationError,
				Message: fmt.Sprintf("team %s does not allow a zero estimate", t.Name),
			}
		}
		input["estimate"] = *refs.Estimate
		detail["estimate"] = strconv.FormatFloat(*refs.Estimate, 'f', -1, 64)
	}

	if refs.DueDate != "" {
		due, err := utils.ParseDueDate(refs.DueDate)
		if err != nil {
			return &resolve.Failure{Code: resolve.CodeValidationError, Message: err.Error()}
		}
		input["dueDate"] = due
		detail["due date"] = due
	}

	if refs.Cycle != "" {
		t, ferr := needTeam()
		if ferr != nil {
			return ferr
		}
		id, ferr := r.cycleID(ctx, t, refs.Cycle)
		if ferr != nil {
			return ferr
		}
		input["cycleId"] = id
		detail["cycle"] = refs.Cycle
	}

	return nil
}

func (r *batchRun) createIssue(ctx context.Context, idx int, in *IssueCreateInput) ItemResult {
	teamRef := in.TeamID
	if teamRef == "" {
		teamRef = in.Team
	}
	team, ferr := r.team(ctx, teamRef)
	if ferr != nil {
		return failedItem(idx, fromFailure(ferr))
	}

	input := map[string]interface{}{
		"teamId": team.ID,
		"title":  in.Title,
	}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.Parent != "" {
		input["parentId"] = linear.NormalizeIssueRef(in.Parent)
	}

	detail := make(map[string]string)
	refs := issueRefs{
		Priority:   in.Priority,
		StateID:    in.StateID,
		State:      in.State,
		LabelIDs:   in.LabelIDs,
		Labels:     in.Labels,
		ProjectID:  in.ProjectID,
		Project:    in.Project,
		AssigneeID: in.AssigneeID,
		Assignee:   in.Assignee,
		Estimate:   in.Estimate,
		DueDate:    in.DueDate,
		Cycle:      in.Cycle,
	}
	getTeam := func() (*linear.Team, *resolve.Failure) { return team, nil }
	if ferr := r.applyIssueRefs(ctx, getTeam, refs, input, detail); ferr != nil {
		return failedItem(idx, fromFailure(ferr))
	}

	// New issues get the authenticated user unless one was named.
	if in.AssigneeID == "" && in.Assignee == "" {
		viewerID, ferr := r.viewer(ctx)
		if ferr != nil {
			return failedItem(idx, fromFailure(ferr))
		}
		input["assigneeId"] = viewerID
	}

	var issue *linear.Issue
	err := r.execute(ctx, func() error {
		var callErr error
		issue, callErr = r.o.client.CreateIssue(ctx, input)
		return callErr
	})
	if err != nil {
		return failedItem(idx, Classify(KindIssueCreate, err))
	}
	return ItemResult{
		Index: idx, Success: true,
		ID: issue.ID, Identifier: issue.Identifier, URL: issue.URL,
		Detail: detail,
	}
}

func (r *batchRun) updateIssue(ctx context.Context, idx int, in *IssueUpdateInput) ItemResult {
	ref := linear.NormalizeIssueRef(in.Issue)

	input := make(map[string]interface{})
	if in.Title != "" {
		input["title"] = in.Title
	}
	if in.Description != nil {
		input["description"] = *in.Description
	}

	detail := make(map[string]string)
	refs := issueRefs{
		Priority:   in.Priority,
		StateID:    in.StateID,
		State:      in.State,
		LabelIDs:   in.LabelIDs,
		Labels:     in.Labels,
		ProjectID:  in.ProjectID,
		Project:    in.Project,
		AssigneeID: in.AssigneeID,
		Assignee:   in.Assignee,
		Estimate:   in.Estimate,
		DueDate:    in.DueDate,
		Cycle:      in.Cycle,
	}
	getTeam := func() (*linear.Team, *resolve.Failure) {
		issue, err := r.o.client.GetIssue(ctx, ref)
		if err != nil {
			return nil, &resolve.Failure{
				Code:    resolve.CodeIssueNotFound,
				Message: fmt.Sprintf("issue %q not found: %v", in.Issue, err),
			}
		}
		if issue.Team == nil {
			return nil, &resolve.Failure{
				Code:    resolve.CodeTeamNotFound,
				Message: fmt.Sprintf("issue %s has no team", issue.Identifier),
			}
		}
		return r.team(ctx, issue.Team.ID)
	}
	if ferr := r.applyIssueRefs(ctx, getTeam, refs, input, detail); ferr != nil {
		return failedItem(idx, fromFailure(ferr))
	}

	if len(input) == 0 {
		return failedItem(idx, &ItemError{
			Code:    resolve.CodeValidationError,
			Message: fmt.Sprintf("no fields to update on %s", in.Issue),
		})
	}

	var issue *linear.Issue
	err := r.execute(ctx, func() error {
		var callErr error
		issue, callErr = r.o.client.UpdateIssue(ctx, ref, input)
		return callErr
	})
	if err != nil {
		return failedItem(idx, Classify(KindIssueUpdate, err))
	}
	return ItemResult{
		Index: idx, Success: true,
		ID: issue.ID, Identifier: issue.Identifier, URL: issue.URL,
		Detail: detail,
	}
}

func (r *batchRun) createProject(ctx context.Context, idx int, in *ProjectCreateInput) ItemResult {
	input := map[string]interface{}{"name": in.Name}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.State != "" {
		input["state"] = in.State
	}

	teamRef := in.TeamID
	if teamRef == "" {
		teamRef = in.Team
	}
	if teamRef != "" {
		team, ferr := r.team(ctx, teamRef)
		if ferr != nil {
			return failedItem(idx, fromFailure(ferr))
		}
		input["teamIds"] = []string{team.ID}
	}

	switch {
	case in.LeadID != "":
		input["leadId"] = in.LeadID
	case in.Lead != "":
		res := r.o.resolver.Assignee(ctx, in.Lead)
		if !res.OK() {
			return failedItem(idx, fromFailure(res.Err))
		}
		input["leadId"] = res.Value
	}

	if in.TargetDate != "" {
		target, err := utils.ParseDueDate(in.TargetDate)
		if err != nil {
			return failedItem(idx, &ItemError{Code: resolve.CodeValidationError, Message: err.Error()})
		}
		input["targetDate"] = target
	}

	var project *linear.Project
	err := r.execute(ctx, func() error {
		var callErr error
		project, callErr = r.o.client.CreateProject(ctx, input)
		return callErr
	})
	if err != nil {
		return failedItem(idx, Classify(KindProjectCreate, err))
	}
	return ItemResult{
		Index: idx, Success: true,
		ID: project.ID, Identifier: project.Name, URL: project.URL,
	}
}

func (r *batchRun) updateProject(ctx context.Context, idx int, in *ProjectUpdateInput) ItemResult {
	projectID := in.Project
	if _, err := uuid.Parse(in.Project); err != nil {
		res := r.o.resolver.Project(ctx, in.Project)
		if !res.OK() {
			return failedItem(idx, fromFailure(res.Err))
		}
		projectID = res.Value
	}

	input := make(map[string]interface{})
	if in.Name != "" {
		input["name"] = in.Name
	}
	if in.Description != nil {
		input["description"] = *in.Description
	}
	if in.State != "" {
		input["state"] = in.State
	}
	switch {
	case in.LeadID != "":
		input["leadId"] = in.LeadID
	case in.Lead != "":
		res := r.o.resolver.Assignee(ctx, in.Lead)
		if !res.OK() {
			return failedItem(idx, fromFailure(res.Err))
		}
		input["leadId"] = res.Value
	}
	if in.TargetDate != "" {
		target, err := utils.ParseDueDate(in.TargetDate)
		if err != nil {
			return failedItem(idx, &ItemError{Code: resolve.CodeValidationError, Message: err.Error()})
		}
		input["targetDate"] = target
	}

	if len(input) == 0 {
		return failedItem(idx, &ItemError{
			Code:    resolve.CodeValidationError,
			Message: fmt.Sprintf("no fields to update on %s", in.Project),
		})
	}

	var project *linear.Project
	err := r.execute(ctx, func() error {
		var callErr error
		project, callErr = r.o.client.UpdateProject(ctx, projectID, input)
		return callErr
	})
	if err != nil {
		return failedItem(idx, Classify(KindProjectUpdate, err))
	}
	return ItemResult{
		Index: idx, Success: true,
		ID: project.ID, Identifier: project.Name, URL: project.URL,
	}
}

func (r *batchRun) createComment(ctx context.Context, idx int, in *CommentCreateInput) ItemResult {
	input := map[string]interface{}{
		"issueId": linear.NormalizeIssueRef(in.Issue),
		"body":    in.Body,
	}

	var comment *linear.Comment
	err := r.execute(ctx, func() error {
		var callErr error
		comment, callErr = r.o.client.CreateComment(ctx, input)
		return callErr
	})
	if err != nil {
		return failedItem(idx, Classify(KindCommentCreate, err))
	}
	res := ItemResult{Index: idx, Success: true, ID: comment.ID, URL: comment.URL}
	if comment.Issue != nil {
		res.Identifier = comment.Issue.Identifier
	}
	return res
}

func (r *batchRun) updateComment(ctx context.Context, idx int, in *CommentUpdateInput) ItemResult {
	input := map[string]interface{}{"body": in.Body}

	var comment *linear.Comment
	err := r.execute(ctx, func() error {
		var callErr error
		comment, callErr = r.o.client.UpdateComment(ctx, in.Comment, input)
		return callErr
	})
	if err != nil {
		return failedItem(idx, Classify(KindCommentUpdate, err))
	}
	res := ItemResult{Index: idx, Success: true, ID: comment.ID, URL: comment.URL}
	if comment.Issue != nil {
		res.Identifier = comment.Issue.Identifier
	}
	return res
}
