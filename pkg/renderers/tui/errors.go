package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrControlRequired is returned when Render is called without a form
	// control to feed answers into.
	ErrControlRequired = errors.New("tui: form control is required")
	// ErrTooManyAttempts is returned when a field or the whole form is still
	// invalid after the configured number of attempts.
	ErrTooManyAttempts = errors.New("tui: too many attempts")
)
