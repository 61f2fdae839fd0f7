package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/linearmcp/linear-mcp-go/pkg/linear"
)

// MetadataClient is the subset of the tracker client the resolver needs
// for its remote lookups.
type MetadataClient interface {
	GetTeam(ctx context.Context, ref string) (*linear.Team, error)
	ListTeams(ctx context.Context) ([]linear.Team, error)
	ListProjects(ctx context.Context, first int) ([]linear.Project, error)
	ListUsers(ctx context.Context) ([]linear.User, error)
	Viewer(ctx context.Context) (*linear.User, error)
}

// Resolver translates human-readable references into canonical ids.
// Pure functions take pre-fetched data; the remote-backed ones perform a
// small bounded number of read calls through the metadata client.
type Resolver struct {
	client MetadataClient
	log    zerolog.Logger
}

// New builds a resolver backed by the given metadata client.
func New(client MetadataClient, log zerolog.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

var priorityLabels = map[string]int{
	"none":   0,
	"urgent": 1,
	"high":   2,
	"medium": 3,
	"normal": 3,
	"low":    4,
}

const validPriorities = "0-4 or one of: none, urgent, high, medium, normal, low"

// Priority resolves a priority reference to its numeric value. Accepts an
// integer 0-4 or a case-insensitive label; "medium" and "normal" both map
// to 3.
func Priority(value any) Result[int] {
	switch v := value.(type) {
	case int:
		return priorityFromInt(v)
	case float64:
		if v != float64(int(v)) {
			return Fail[int](CodeValidationError,
				fmt.Sprintf("invalid priority %v", v), validPriorities)
		}
		return priorityFromInt(int(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return Fail[int](CodeValidationError,
				fmt.Sprintf("invalid priority %q", v.String()), validPriorities)
		}
		return priorityFromInt(int(n))
	case string:
		if p, ok := priorityLabels[strings.ToLower(strings.TrimSpace(v))]; ok {
			return Ok(p)
		}
		return Fail[int](CodeValidationError,
			fmt.Sprintf("unknown priority %q", v), validPriorities)
	default:
		return Fail[int](CodeValidationError,
			fmt.Sprintf("invalid priority type %T", value), validPriorities)
	}
}

func priorityFromInt(n int) Result[int] {
	if n < 0 || n > 4 {
		return Fail[int](CodeValidationError,
			fmt.Sprintf("priority %d out of range", n), validPriorities)
	}
	return Ok(n)
}

// State resolves a state reference against a team's workflow states. The
// ref is matched as an exact case-insensitive state name first, then as a
// state-type tag (backlog, unstarted, started, completed, canceled). When
// several states share the requested type the first one in the upstream
// listing wins.
func State(states []linear.WorkflowState, ref string) Result[string] {
	lower := strings.ToLower(strings.TrimSpace(ref))

	for _, s := range states {
		if strings.ToLower(s.Name) == lower {
			return Ok(s.ID)
		}
	}

	if isStateType(lower) {
		for _, s := range states {
			if s.Type == lower {
				return Ok(s.ID)
			}
		}
		return Fail[string](CodeNotFound,
			fmt.Sprintf("no state with type %q on this team", ref),
			presentStateTypes(states)...)
	}

	var suggestions []string
	for _, s := range states {
		name := strings.ToLower(s.Name)
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			suggestions = append(suggestions, s.Name)
		}
	}
	return Fail[string](CodeNotFound,
		fmt.Sprintf("state %q not found", ref), suggestions...)
}

func isStateType(s string) bool {
	for _, t := range linear.StateTypes {
		if s == t {
			return true
		}
	}
	return false
}

func presentStateTypes(states []linear.WorkflowState) []string {
	seen := make(map[string]bool)
	var types []string
	for _, s := range states {
		if !seen[s.Type] {
			seen[s.Type] = true
			types = append(types, s.Type)
		}
	}
	return types
}

// Labels resolves label names against a team's labels all-or-nothing: if
// any requested name has no exact case-insensitive match the whole call
// fails, reporting every unmatched name and the available labels.
func Labels(available []linear.Label, names []string) Result[[]string] {
	byName := make(map[string]string, len(available))
	for _, l := range available {
		byName[strings.ToLower(l.Name)] = l.ID
	}

	ids := make([]string, 0, len(names))
	var unmatched []string
	for _, name := range names {
		if id, ok := byName[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		} else {
			unmatched = append(unmatched, name)
		}
	}
	if len(unmatched) > 0 {
		all := make([]string, 0, len(available))
		for _, l := range available {
			all = append(all, l.Name)
		}
		return Fail[[]string](CodeNotFound,
			fmt.Sprintf("labels not found: %s", strings.Join(unmatched, ", ")),
			all...)
	}
	return Ok(ids)
}

// Project resolves a project name to its id by searching the first page
// of workspace projects for an exact case-insensitive match. On miss it
// suggests up to 5 substring matches.
func (r *Resolver) Project(ctx context.Context, name string) Result[string] {
	projects, err := r.client.ListProjects(ctx, linear.DefaultPageSize)
	if err != nil {
		return Fail[string](CodeProjectNotFound,
			fmt.Sprintf("failed to list projects: %v", err))
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	for _, p := range projects {
		if strings.ToLower(p.Name) == lower {
			return Ok(p.ID)
		}
	}

	var suggestions []string
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			suggestions = append(suggestions, p.Name)
			if len(suggestions) == 5 {
				break
			}
		}
	}
	return Fail[string](CodeProjectNotFound,
		fmt.Sprintf("project %q not found", name), suggestions...)
}

// Assignee resolves a user reference: an explicit id passes through, then
// exact case-insensitive email, then fuzzy name match against name and
// display name.
func (r *Resolver) Assignee(ctx context.Context, ref string) Result[string] {
	ref = strings.TrimSpace(ref)
	if _, err := uuid.Parse(ref); err == nil {
		return Ok(ref)
	}

	users, err := r.client.ListUsers(ctx)
	if err != nil {
		return Fail[string](CodeUserNotFound,
			fmt.Sprintf("failed to list users: %v", err))
	}

	lower := strings.ToLower(ref)
	for _, u := range users {
		if strings.ToLower(u.Email) == lower {
			return Ok(u.ID)
		}
	}
	for _, u := range users {
		if strings.ToLower(u.Name) == lower || strings.ToLower(u.DisplayName) == lower {
			return Ok(u.ID)
		}
	}

	var matches []linear.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), lower) ||
			strings.Contains(strings.ToLower(u.DisplayName), lower) {
			matches = append(matches, u)
		}
	}
	if len(matches) == 1 {
		r.log.Debug().Str("ref", ref).Str("user", matches[0].Name).
			Msg("resolved assignee by fuzzy name match")
		return Ok(matches[0].ID)
	}

	suggestions := make([]string, 0, len(matches))
	for _, u := range matches {
		suggestions = append(suggestions, fmt.Sprintf("%s <%s>", u.Name, u.Email))
	}
	return Fail[string](CodeUserNotFound,
		fmt.Sprintf("user %q not found", ref), suggestions...)
}

// Viewer returns the authenticated user's id, used as the default
// assignee when an item names none.
func (r *Resolver) Viewer(ctx context.Context) Result[string] {
	viewer, err := r.client.Viewer(ctx)
	if err != nil {
		return Fail[string](CodeUserNotFound,
			fmt.Sprintf("failed to fetch current user: %v", err))
	}
	return Ok(viewer.ID)
}

// Team resolves a team reference: a UUID is fetched directly, otherwise
// the workspace teams are matched by key then by case-insensitive name.
func (r *Resolver) Team(ctx context.Context, ref string) Result[*linear.Team] {
	ref = strings.TrimSpace(ref)
	if _, err := uuid.Parse(ref); err == nil {
		team, err := r.client.GetTeam(ctx, ref)
		if err != nil {
			return Fail[*linear.Team](CodeTeamNotFound,
				fmt.Sprintf("team %q not found: %v", ref, err))
		}
		return Ok(team)
	}

	teams, err := r.client.ListTeams(ctx)
	if err != nil {
		return Fail[*linear.Team](CodeTeamNotFound,
			fmt.Sprintf("failed to list teams: %v", err))
	}

	for i := range teams {
		if strings.EqualFold(teams[i].Key, ref) {
			return Ok(&teams[i])
		}
	}
	for i := range teams {
		if strings.EqualFold(teams[i].Name, ref) {
			return Ok(&teams[i])
		}
	}

	suggestions := make([]string, 0, len(teams))
	for _, t := range teams {
		suggestions = append(suggestions, fmt.Sprintf("%s (%s)", t.Name, t.Key))
	}
	return Fail[*linear.Team](CodeTeamNotFound,
		fmt.Sprintf("team %q not found", ref), suggestions...)
}
