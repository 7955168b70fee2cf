package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// HiddenFields are emitted as hidden inputs, sorted by name.
	HiddenFields map[string]string
	// Theme carries the resolved theme tokens and asset resolver.
	Theme *theme.RendererConfig
	// Control binds interactive renderers (terminal prompts, TUI) to a live
	// form controller. Static renderers ignore it.
	Control form.Control
}
