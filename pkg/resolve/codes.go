package resolve

// Error codes shared across resolution and batch execution. The set is
// closed; callers must not invent new codes.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeTeamNotFound     = "TEAM_NOT_FOUND"
	CodeProjectNotFound  = "PROJECT_NOT_FOUND"
	CodeIssueNotFound    = "ISSUE_NOT_FOUND"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeFilterInvalid    = "FILTER_INVALID"
	CodeCyclesDisabled   = "CYCLES_DISABLED"
	CodeCancelled        = "CANCELLED"
)
