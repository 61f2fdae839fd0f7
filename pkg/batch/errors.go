package batch

import (
	"context"
	"errors"
	"strings"

	"github.com/linearmcp/linear-mcp-go/pkg/resolve"
)

// ItemError is the structured failure attached to a FAILED item result.
type ItemError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (e *ItemError) Error() string {
	return e.Message
}

func fromFailure(f *resolve.Failure) *ItemError {
	return &ItemError{Code: f.Code, Message: f.Message, Suggestions: f.Suggestions}
}

// genericCode returns the fallback code for an unclassified failure of
// the given operation kind.
func genericCode(kind Kind) string {
	switch kind {
	case KindIssueCreate:
		return "ISSUE_CREATE_ERROR"
	case KindIssueUpdate:
		return "ISSUE_UPDATE_ERROR"
	case KindProjectCreate:
		return "PROJECT_CREATE_ERROR"
	case KindProjectUpdate:
		return "PROJECT_UPDATE_ERROR"
	case KindCommentCreate:
		return "COMMENT_CREATE_ERROR"
	case KindCommentUpdate:
		return "COMMENT_UPDATE_ERROR"
	default:
		return "LINEAR_API_ERROR"
	}
}

// Classify maps a transport-layer error onto the taxonomy by
// case-insensitive substring matching on its message. Resolution failures
// carry their code from the call site and never pass through here.
func Classify(kind Kind, err error) *ItemError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ItemError{Code: resolve.CodeCancelled, Message: "batch cancelled before this item was dispatched"}
	}

	msg := strings.ToLower(err.Error())
	code := genericCode(kind)

	switch {
	case strings.Contains(msg, "rate limit"):
		code = resolve.CodeRateLimited
	case strings.Contains(msg, "not found"):
		switch {
		case strings.Contains(msg, "user"):
			code = resolve.CodeUserNotFound
		case strings.Contains(msg, "team"):
			code = resolve.CodeTeamNotFound
		case strings.Contains(msg, "project"):
			code = resolve.CodeProjectNotFound
		case strings.Contains(msg, "issue"):
			code = resolve.CodeIssueNotFound
		default:
			code = resolve.CodeNotFound
		}
	case strings.Contains(msg, "permission") || strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "unauthorized"):
		code = resolve.CodePermissionDenied
	case strings.Contains(msg, "cycles are not enabled") ||
		(strings.Contains(msg, "cycle") && strings.Contains(msg, "disabled")):
		code = resolve.CodeCyclesDisabled
	case strings.Contains(msg, "validation") || strings.Contains(msg, "invalid input"):
		code = resolve.CodeValidationError
	}

	return &ItemError{Code: code, Message: err.Error()}
}
