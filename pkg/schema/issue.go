package schema

import "strings"

// Issue codes emitted by the built-in rules.
const (
	CodeRequired  = "required"
	CodeMinLength = "min_length"
	CodeMaxLength = "max_length"
	CodeEmail     = "email"
	CodePattern   = "pattern"
	CodeMismatch  = "mismatch"
)

// Issue is a single constraint violation attributed to a field path. Issues
// produced by cross-field refinements carry the path of the field they are
// reported on, not the fields they read.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError aggregates the issues of a failed validation run so callers
// that only deal in errors can still inspect individual field failures with
// errors.As.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "schema: validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Error())
	}
	return "schema: validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes each issue as an error.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue)
	}
	return out
}
