package template

import (
	"io"
)

// TemplateRenderer is the engine contract HTML renderers rely on. Each render
// call returns the output and also writes it to any writers supplied.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
