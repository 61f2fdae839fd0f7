package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linearmcp/linear-mcp-go/pkg/resolve"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		err  error
		want string
	}{
		{"rate limit", KindIssueCreate, errors.New("rate limit exceeded, retry after 60s"), resolve.CodeRateLimited},
		{"user not found", KindIssueUpdate, errors.New("User not found: bob@example.com"), resolve.CodeUserNotFound},
		{"team not found", KindIssueCreate, errors.New("team not found: ENG"), resolve.CodeTeamNotFound},
		{"project not found", KindProjectUpdate, errors.New("Project not found"), resolve.CodeProjectNotFound},
		{"issue not found", KindCommentCreate, errors.New("issue not found: ENG-999"), resolve.CodeIssueNotFound},
		{"bare not found", KindIssueUpdate, errors.New("entity not found"), resolve.CodeNotFound},
		{"permission", KindIssueCreate, errors.New("permission denied for workspace"), resolve.CodePermissionDenied},
		{"forbidden", KindProjectCreate, errors.New("403 Forbidden"), resolve.CodePermissionDenied},
		{"cycles disabled", KindIssueUpdate, errors.New("cycles are not enabled for this team"), resolve.CodeCyclesDisabled},
		{"validation", KindIssueCreate, errors.New("GraphQL errors: validation failed on title"), resolve.CodeValidationError},
		{"generic create", KindIssueCreate, errors.New("boom"), "ISSUE_CREATE_ERROR"},
		{"generic update", KindProjectUpdate, errors.New("boom"), "PROJECT_UPDATE_ERROR"},
		{"generic comment", KindCommentUpdate, errors.New("boom"), "COMMENT_UPDATE_ERROR"},
		{"unknown kind", Kind(""), errors.New("boom"), "LINEAR_API_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.kind, tt.err)
			assert.Equal(t, tt.want, got.Code)
			assert.Equal(t, tt.err.Error(), got.Message)
		})
	}
}

func TestClassifyCancellation(t *testing.T) {
	got := Classify(KindIssueCreate, context.Canceled)
	assert.Equal(t, resolve.CodeCancelled, got.Code)

	got = Classify(KindIssueCreate, context.DeadlineExceeded)
	assert.Equal(t, resolve.CodeCancelled, got.Code)
}
