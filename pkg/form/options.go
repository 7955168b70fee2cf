package form

import (
	"context"

	"github.com/inconshreveable/log15"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/schema"
)

// SubmitFunc receives the validated record. It is called at most once per
// valid submit.
type SubmitFunc[T any] func(ctx context.Context, value T) error

// InvalidFunc receives the failing result of a submit attempt.
type InvalidFunc[T any] func(ctx context.Context, result schema.Result[T])

// Event describes one validation run. Observers use it for metrics.
type Event struct {
	Trigger Trigger
	// Path is the field that triggered the run; empty for submit and manual
	// runs.
	Path   string
	Valid  bool
	Issues []schema.Issue
}

// Option configures a controller.
type Option func(*config)

type config struct {
	mode       Mode
	revalidate ReValidateMode
	logger     log15.Logger
	observers  []func(Event)
}

func defaultConfig() config {
	return config{
		mode:       OnBlur,
		revalidate: ReValidateOnChange,
		logger:     logging.Discard(),
	}
}

// WithMode sets the pre-submit validation trigger. Empty keeps OnBlur.
func WithMode(mode Mode) Option {
	return func(cfg *config) {
		if mode != "" {
			cfg.mode = mode
		}
	}
}

// WithReValidateMode sets the post-submit validation trigger.
func WithReValidateMode(mode ReValidateMode) Option {
	return func(cfg *config) {
		if mode != "" {
			cfg.revalidate = mode
		}
	}
}

// WithLogger attaches a logger; validation runs are logged at debug level.
func WithLogger(logger log15.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after every validation run.
func WithObserver(fn func(Event)) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.observers = append(cfg.observers, fn)
		}
	}
}
