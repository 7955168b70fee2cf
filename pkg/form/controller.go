package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// Controller owns a record of type T, the result of the last validation run
// and the per-field lifecycle. A controller belongs to a single event loop;
// callers sharing one across goroutines must serialise access.
//
// Displayed errors are the issues of the last run restricted to the fields
// that have been evaluated (validated at least once). Every run re-evaluates
// the whole record, so an evaluated field never shows an error that the
// current run would not produce, including cross-field errors caused by a
// different field.
type Controller[T any] struct {
	schema *schema.Object[T]
	cfg    config

	initial   T
	value     T
	touched   map[string]bool
	evaluated map[string]bool
	last      schema.Result[T]

	submitCount      int
	submitSuccessful bool
	submitErr        error

	onSubmit  SubmitFunc[T]
	onInvalid InvalidFunc[T]
}

// New constructs a controller over s starting from the zero value of T.
func New[T any](s *schema.Object[T], opts ...Option) *Controller[T] {
	if s == nil {
		panic("form: schema is required")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Controller[T]{
		schema:    s,
		cfg:       cfg,
		touched:   make(map[string]bool),
		evaluated: make(map[string]bool),
	}
}

// OnSubmit registers the callback invoked with the record after a valid
// submit. It replaces any previous callback.
func (c *Controller[T]) OnSubmit(fn SubmitFunc[T]) *Controller[T] {
	c.onSubmit = fn
	return c
}

// OnInvalid registers the callback invoked after an invalid submit.
func (c *Controller[T]) OnInvalid(fn InvalidFunc[T]) *Controller[T] {
	c.onInvalid = fn
	return c
}

// Mode returns the configured pre-submit trigger.
func (c *Controller[T]) Mode() Mode {
	return c.cfg.mode
}

// Paths lists the controlled field paths.
func (c *Controller[T]) Paths() []string {
	return c.schema.Paths()
}

// Value returns the raw value of path, or "" for unknown paths.
func (c *Controller[T]) Value(path string) string {
	value, _ := c.schema.Get(c.value, path)
	return value
}

// Record returns a copy of the current record.
func (c *Controller[T]) Record() T {
	return c.value
}

// Change stores raw as the new value of path and validates when the trigger
// policy asks for it.
func (c *Controller[T]) Change(path, raw string) error {
	if err := c.schema.Set(&c.value, path, raw); err != nil {
		return fmt.Errorf("form: change: %w", err)
	}
	if shouldValidate(c.cfg.mode, c.cfg.revalidate, TriggerChange, c.touched[path], c.IsSubmitted()) {
		c.run(TriggerChange, path)
	}
	return nil
}

// Blur marks path as touched and validates when the trigger policy asks for
// it.
func (c *Controller[T]) Blur(path string) error {
	if !c.schema.Has(path) {
		return fmt.Errorf("form: blur: %w: %q", schema.ErrUnknownField, path)
	}
	c.touched[path] = true
	if shouldValidate(c.cfg.mode, c.cfg.revalidate, TriggerBlur, true, c.IsSubmitted()) {
		c.run(TriggerBlur, path)
	}
	return nil
}

// Validate runs the schema over the whole record, marks every field as
// evaluated and returns the result. It does not count as a submit.
func (c *Controller[T]) Validate() schema.Result[T] {
	return c.run(TriggerManual, c.schema.Paths()...)
}

// Submit validates every field regardless of touch state. A valid record is
// passed to the submit callback exactly once; an invalid one suppresses the
// callback and surfaces all errors. The returned error is only ever the
// submit callback's error or a context error; validation failures are
// reported through the result.
func (c *Controller[T]) Submit(ctx context.Context) (schema.Result[T], error) {
	if ctx == nil {
		return schema.Result[T]{}, errors.New("form: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Result[T]{}, err
	}

	c.submitCount++
	c.submitSuccessful = false
	c.submitErr = nil

	result := c.run(TriggerSubmit, c.schema.Paths()...)
	if !result.Valid() {
		c.cfg.logger.Debug("form submit rejected", "issues", len(result.Issues), "attempt", c.submitCount)
		if c.onInvalid != nil {
			c.onInvalid(ctx, result)
		}
		return result, nil
	}

	if c.onSubmit != nil {
		if err := c.onSubmit(ctx, result.Value); err != nil {
			c.submitErr = err
			c.cfg.logger.Warn("form submit handler failed", "err", err, "attempt", c.submitCount)
			return result, fmt.Errorf("form: submit: %w", err)
		}
	}
	c.submitSuccessful = true
	return result, nil
}

// Errors returns the displayed message (first issue) per evaluated field.
func (c *Controller[T]) Errors() map[string]string {
	out := make(map[string]string)
	for _, path := range c.schema.Paths() {
		if messages := c.FieldErrors(path); len(messages) > 0 {
			out[path] = messages[0]
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FieldErrors returns every message for path from the last run, or nil while
// the field has not been evaluated.
func (c *Controller[T]) FieldErrors(path string) []string {
	if !c.evaluated[path] {
		return nil
	}
	var out []string
	for _, issue := range c.last.For(path) {
		out = append(out, issue.Message)
	}
	return out
}

// State returns the lifecycle state of path.
func (c *Controller[T]) State(path string) model.FieldStatus {
	switch {
	case c.evaluated[path] && len(c.last.For(path)) > 0:
		return model.StatusInvalid
	case c.evaluated[path]:
		return model.StatusValid
	case c.touched[path]:
		return model.StatusTouched
	default:
		return model.StatusPristine
	}
}

// States returns the lifecycle state of every field.
func (c *Controller[T]) States() map[string]model.FieldStatus {
	out := make(map[string]model.FieldStatus)
	for _, path := range c.schema.Paths() {
		out[path] = c.State(path)
	}
	return out
}

// Touched reports whether path has been blurred at least once.
func (c *Controller[T]) Touched(path string) bool {
	return c.touched[path]
}

// Dirty reports whether path differs from its initial value.
func (c *Controller[T]) Dirty(path string) bool {
	current, _ := c.schema.Get(c.value, path)
	initial, _ := c.schema.Get(c.initial, path)
	return current != initial
}

// SubmitCount returns the number of submit attempts.
func (c *Controller[T]) SubmitCount() int {
	return c.submitCount
}

// IsSubmitted reports whether a submit has been attempted.
func (c *Controller[T]) IsSubmitted() bool {
	return c.submitCount > 0
}

// IsSubmitSuccessful reports whether the last submit was valid and its
// callback returned no error.
func (c *Controller[T]) IsSubmitSuccessful() bool {
	return c.submitSuccessful
}

// SubmitError returns the callback error of the last submit, if any.
func (c *Controller[T]) SubmitError() error {
	return c.submitErr
}

// Reset clears every field state. With an argument the record and the
// baseline for Dirty become that value; without one the record returns to the
// current baseline.
func (c *Controller[T]) Reset(values ...T) {
	if len(values) > 0 {
		c.initial = values[0]
	}
	c.value = c.initial
	c.touched = make(map[string]bool)
	c.evaluated = make(map[string]bool)
	c.last = schema.Result[T]{}
	c.submitCount = 0
	c.submitSuccessful = false
	c.submitErr = nil
}

// Snapshot overlays values, displayed errors and states onto a copy of base.
// Fields in base that the schema does not control are left untouched.
func (c *Controller[T]) Snapshot(base model.FormModel) model.FormModel {
	form := base.Clone()
	for i := range form.Fields {
		field := &form.Fields[i]
		if !c.schema.Has(field.Name) {
			continue
		}
		field.Value = c.Value(field.Name)
		field.Errors = c.FieldErrors(field.Name)
		field.Status = c.State(field.Name)
	}
	form.SubmitCount = c.submitCount
	form.Submitted = c.IsSubmitted()
	form.SubmitSuccessful = c.submitSuccessful
	if c.submitErr != nil {
		form.FormErrors = append(form.FormErrors, c.submitErr.Error())
	}
	return form
}

func (c *Controller[T]) run(trigger Trigger, paths ...string) schema.Result[T] {
	result := c.schema.Validate(c.value)
	c.last = result
	for _, path := range paths {
		c.evaluated[path] = true
	}

	path := ""
	if len(paths) == 1 {
		path = paths[0]
	}
	c.cfg.logger.Debug("form validated", "trigger", string(trigger), "path", path, "valid", result.Valid(), "issues", len(result.Issues))

	if len(c.cfg.observers) > 0 {
		event := Event{Trigger: trigger, Path: path, Valid: result.Valid()}
		event.Issues = append(event.Issues, result.Issues...)
		for _, observe := range c.cfg.observers {
			observe(event)
		}
	}
	return result
}
