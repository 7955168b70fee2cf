// Package regform is the entry point of the registration form library. It
// wires the registration schema into a form controller and renders the
// controller state as HTML through the default orchestrator.
package regform

import (
	"context"

	"github.com/inconshreveable/log15"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/registration"
)

// Controller is a form controller over the registration record.
type Controller = form.Controller[registration.FormRecord]

// Option customises NewController.
type Option func(*options)

type options struct {
	logger   log15.Logger
	submit   form.SubmitFunc[registration.FormRecord]
	formOpts []form.Option
}

// WithLogger sets the logger used by the controller and the default submit
// handler.
func WithLogger(logger log15.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSubmitHandler replaces the default logging submit handler.
func WithSubmitHandler(fn form.SubmitFunc[registration.FormRecord]) Option {
	return func(o *options) {
		if fn != nil {
			o.submit = fn
		}
	}
}

// WithFormOptions forwards controller options such as form.WithMode.
func WithFormOptions(opts ...form.Option) Option {
	return func(o *options) {
		o.formOpts = append(o.formOpts, opts...)
	}
}

// NewController returns a controller validating on blur with the
// registration schema. Without WithSubmitHandler accepted records are logged.
func NewController(opts ...Option) *Controller {
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.submit == nil {
		o.submit = LogSubmission(o.logger)
	}

	formOpts := append([]form.Option{form.WithLogger(o.logger)}, o.formOpts...)
	return form.New(registration.Schema(), formOpts...).OnSubmit(o.submit)
}

// LogSubmission returns a submit handler that logs the name and email of
// each accepted record. Passwords are never logged.
func LogSubmission(logger log15.Logger) form.SubmitFunc[registration.FormRecord] {
	if logger == nil {
		logger = logging.Discard()
	}
	return func(_ context.Context, record registration.FormRecord) error {
		logger.Info("registration submitted", "name", record.Name, "email", record.Email)
		return nil
	}
}

// Render renders the current state of control as HTML with the default
// vanilla renderer and theme.
func Render(ctx context.Context, control form.Control, opts ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(opts...).Generate(ctx, orchestrator.Request{Control: control})
}
