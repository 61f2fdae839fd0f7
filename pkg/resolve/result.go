// Package resolve translates human-readable references (priority labels,
// state names, label names, project names, user emails) into canonical
// Linear identifiers.
package resolve

// Result carries either a resolved value or a structured failure with a
// machine-readable code and actionable suggestions.
type Result[T any] struct {
	Value T
	Err   *Failure
}

// Failure describes why a reference could not be resolved.
type Failure struct {
	Code        string
	Message     string
	Suggestions []string
}

func (f *Failure) Error() string {
	return f.Message
}

// Ok wraps a successfully resolved value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail builds a failed result with the given code, message and suggestions.
func Fail[T any](code, message string, suggestions ...string) Result[T] {
	return Result[T]{Err: &Failure{Code: code, Message: message, Suggestions: suggestions}}
}

// OK reports whether the resolution succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}
