package form

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Control is the record-agnostic view of a controller that renderers bind
// inputs to.
type Control interface {
	Paths() []string
	Value(path string) string
	Change(path, raw string) error
	Blur(path string) error
	FieldErrors(path string) []string
	State(path string) model.FieldStatus
	// SubmitForm submits and reports whether the record was valid and
	// accepted by the submit callback.
	SubmitForm(ctx context.Context) (bool, error)
	Snapshot(base model.FormModel) model.FormModel
}

var _ Control = (*Controller[struct{}])(nil)

// SubmitForm implements Control.
func (c *Controller[T]) SubmitForm(ctx context.Context) (bool, error) {
	result, err := c.Submit(ctx)
	if err != nil {
		return false, err
	}
	return result.Valid(), nil
}
