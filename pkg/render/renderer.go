package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, terminal
// output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// FieldRenderer is implemented by renderers that can emit a single field in
// isolation. Interactive front ends use it to swap one field after a blur or
// change without re-rendering the whole form.
type FieldRenderer interface {
	Renderer
	RenderField(ctx context.Context, form model.FormModel, field string, options RenderOptions) ([]byte, error)
}
