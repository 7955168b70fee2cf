package schema

// Result is the outcome of validating a value. The value is always carried,
// valid or not, so callers can echo it back alongside the issues.
type Result[T any] struct {
	Value  T
	Issues []Issue
}

// Valid reports whether the run produced no issues.
func (r Result[T]) Valid() bool {
	return len(r.Issues) == 0
}

// For returns the issues attributed to path, in evaluation order.
func (r Result[T]) For(path string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Path == path {
			out = append(out, issue)
		}
	}
	return out
}

// Errors groups messages by field path. Returns nil when valid.
func (r Result[T]) Errors() map[string][]string {
	if r.Valid() {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range r.Issues {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

// FirstErrors keeps the first message per field path, which is what inline
// error lines display.
func (r Result[T]) FirstErrors() map[string]string {
	if r.Valid() {
		return nil
	}
	out := make(map[string]string)
	for _, issue := range r.Issues {
		if _, exists := out[issue.Path]; exists {
			continue
		}
		out[issue.Path] = issue.Message
	}
	return out
}

// Err returns a *ValidationError for invalid results and nil otherwise.
func (r Result[T]) Err() error {
	if r.Valid() {
		return nil
	}
	issues := make([]Issue, len(r.Issues))
	copy(issues, r.Issues)
	return &ValidationError{Issues: issues}
}
