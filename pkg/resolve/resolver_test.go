package resolve

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linearmcp/linear-mcp-go/pkg/linear"
)

type fakeMetadata struct {
	teams    []linear.Team
	projects []linear.Project
	users    []linear.User
	viewer   *linear.User
}

func (f *fakeMetadata) GetTeam(ctx context.Context, ref string) (*linear.Team, error) {
	for i := range f.teams {
		if f.teams[i].ID == ref {
			return &f.teams[i], nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeMetadata) ListTeams(ctx context.Context) ([]linear.Team, error) {
	return f.teams, nil
}

func (f *fakeMetadata) ListProjects(ctx context.Context, first int) ([]linear.Project, error) {
	return f.projects, nil
}

func (f *fakeMetadata) ListUsers(ctx context.Context) ([]linear.User, error) {
	return f.users, nil
}

func (f *fakeMetadata) Viewer(ctx context.Context) (*linear.User, error) {
	if f.viewer == nil {
		return nil, assert.AnError
	}
	return f.viewer, nil
}

func newTestResolver(f *fakeMetadata) *Resolver {
	return New(f, zerolog.Nop())
}

func TestPriority(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{"integer zero", 0, 0, false},
		{"integer four", 4, 4, false},
		{"float from json", float64(2), 2, false},
		{"medium label", "Medium", 3, false},
		{"normal label", "Normal", 3, false},
		{"urgent label", "urgent", 1, false},
		{"out of range high", 5, 0, true},
		{"out of range low", -1, 0, true},
		{"unknown label", "critical", 0, true},
		{"fractional", 2.5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Priority(tt.value)
			if tt.wantErr {
				require.False(t, res.OK())
				assert.Equal(t, CodeValidationError, res.Err.Code)
				assert.NotEmpty(t, res.Err.Suggestions)
				return
			}
			require.True(t, res.OK())
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestState(t *testing.T) {
	states := []linear.WorkflowState{
		{ID: "s1", Name: "Backlog", Type: "backlog"},
		{ID: "s2", Name: "Todo", Type: "unstarted"},
		{ID: "s3", Name: "In Progress", Type: "started"},
		{ID: "s4", Name: "In Review", Type: "started"},
		{ID: "s5", Name: "Done", Type: "completed"},
	}

	t.Run("exact name case-insensitive", func(t *testing.T) {
		res := State(states, "in progress")
		require.True(t, res.OK())
		assert.Equal(t, "s3", res.Value)
	})

	t.Run("type tag picks first of type", func(t *testing.T) {
		res := State(states, "started")
		require.True(t, res.OK())
		assert.Equal(t, "s3", res.Value)
	})

	t.Run("type tag single match", func(t *testing.T) {
		res := State(states, "completed")
		require.True(t, res.OK())
		assert.Equal(t, "s5", res.Value)
	})

	t.Run("missing type lists present types", func(t *testing.T) {
		res := State(states[:2], "completed")
		require.False(t, res.OK())
		assert.Equal(t, CodeNotFound, res.Err.Code)
		assert.ElementsMatch(t, []string{"backlog", "unstarted"}, res.Err.Suggestions)
	})

	t.Run("miss suggests substring matches", func(t *testing.T) {
		res := State(states, "Review")
		require.False(t, res.OK())
		assert.Contains(t, res.Err.Suggestions, "In Review")
	})
}

func TestLabels(t *testing.T) {
	available := []linear.Label{
		{ID: "l1", Name: "Bug"},
		{ID: "l2", Name: "Feature"},
	}

	t.Run("single match", func(t *testing.T) {
		res := Labels(available, []string{"bug"})
		require.True(t, res.OK())
		assert.Equal(t, []string{"l1"}, res.Value)
	})

	t.Run("all or nothing", func(t *testing.T) {
		res := Labels(available, []string{"Bug", "NotExist"})
		require.False(t, res.OK())
		assert.Contains(t, res.Err.Message, "NotExist")
		assert.ElementsMatch(t, []string{"Bug", "Feature"}, res.Err.Suggestions)
	})

	t.Run("preserves request order", func(t *testing.T) {
		res := Labels(available, []string{"Feature", "Bug"})
		require.True(t, res.OK())
		assert.Equal(t, []string{"l2", "l1"}, res.Value)
	})
}

func TestProject(t *testing.T) {
	r := newTestResolver(&fakeMetadata{projects: []linear.Project{
		{ID: "p1", Name: "Mobile App"},
		{ID: "p2", Name: "Mobile Web"},
		{ID: "p3", Name: "Backend"},
	}})

	t.Run("exact match", func(t *testing.T) {
		res := r.Project(context.Background(), "mobile app")
		require.True(t, res.OK())
		assert.Equal(t, "p1", res.Value)
	})

	t.Run("miss suggests substring matches", func(t *testing.T) {
		res := r.Project(context.Background(), "Mobile")
		require.False(t, res.OK())
		assert.Equal(t, CodeProjectNotFound, res.Err.Code)
		assert.ElementsMatch(t, []string{"Mobile App", "Mobile Web"}, res.Err.Suggestions)
	})
}

func TestAssignee(t *testing.T) {
	r := newTestResolver(&fakeMetadata{users: []linear.User{
		{ID: "u1", Name: "Ada Lovelace", DisplayName: "ada", Email: "ada@example.com"},
		{ID: "u2", Name: "Alan Turing", DisplayName: "alan", Email: "alan@example.com"},
	}})

	t.Run("uuid passes through", func(t *testing.T) {
		res := r.Assignee(context.Background(), "9d4f2c1a-8b3e-4f6d-a1c2-0e5b7d9f3a21")
		require.True(t, res.OK())
		assert.Equal(t, "9d4f2c1a-8b3e-4f6d-a1c2-0e5b7d9f3a21", res.Value)
	})

	t.Run("exact email wins", func(t *testing.T) {
		res := r.Assignee(context.Background(), "Ada@Example.com")
		require.True(t, res.OK())
		assert.Equal(t, "u1", res.Value)
	})

	t.Run("fuzzy name single match", func(t *testing.T) {
		res := r.Assignee(context.Background(), "lovelace")
		require.True(t, res.OK())
		assert.Equal(t, "u1", res.Value)
	})

	t.Run("ambiguous fuzzy match fails with candidates", func(t *testing.T) {
		res := r.Assignee(context.Background(), "a")
		require.False(t, res.OK())
		assert.Equal(t, CodeUserNotFound, res.Err.Code)
		assert.Len(t, res.Err.Suggestions, 2)
	})

	t.Run("no match", func(t *testing.T) {
		res := r.Assignee(context.Background(), "grace")
		require.False(t, res.OK())
		assert.Equal(t, CodeUserNotFound, res.Err.Code)
	})
}

func TestTeam(t *testing.T) {
	r := newTestResolver(&fakeMetadata{teams: []linear.Team{
		{ID: "t1", Key: "ENG", Name: "Engineering"},
		{ID: "t2", Key: "OPS", Name: "Operations"},
	}})

	t.Run("by key", func(t *testing.T) {
		res := r.Team(context.Background(), "eng")
		require.True(t, res.OK())
		assert.Equal(t, "t1", res.Value.ID)
	})

	t.Run("by name", func(t *testing.T) {
		res := r.Team(context.Background(), "operations")
		require.True(t, res.OK())
		assert.Equal(t, "t2", res.Value.ID)
	})

	t.Run("miss lists teams", func(t *testing.T) {
		res := r.Team(context.Background(), "design")
		require.False(t, res.OK())
		assert.Equal(t, CodeTeamNotFound, res.Err.Code)
		assert.Contains(t, res.Err.Suggestions, "Engineering (ENG)")
	})
}
