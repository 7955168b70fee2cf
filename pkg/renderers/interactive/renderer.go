package interactive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inconshreveable/log15"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// Name is the registry identifier of the interactive renderer.
const Name = "interactive"

const maskedValue = "********"

// ErrCancelled is returned when the user leaves the form without submitting.
var ErrCancelled = errors.New("interactive: cancelled")

// Option configures the renderer.
type Option func(*Renderer)

// WithInput reads key presses from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(rr *Renderer) {
		rr.input = r
	}
}

// WithOutput draws to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.output = w
	}
}

// WithStyles overrides the default styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithProgramOptions appends bubbletea program options, e.g. tea.WithAltScreen.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(r *Renderer) {
		r.programOptions = append(r.programOptions, opts...)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger log15.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer runs the form as a bubbletea program and returns the submitted
// record as JSON with passwords masked.
type Renderer struct {
	input          io.Reader
	output         io.Writer
	styles         Styles
	programOptions []tea.ProgramOption
	logger         log15.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		styles: DefaultStyles(),
		logger: logging.Discard(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render blocks until the user submits or cancels.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("interactive: context is required")
	}
	if opts.Control == nil {
		return nil, errors.New("interactive: form control is required")
	}

	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if r.input != nil {
		programOptions = append(programOptions, tea.WithInput(r.input))
	}
	if r.output != nil {
		programOptions = append(programOptions, tea.WithOutput(r.output))
	}
	programOptions = append(programOptions, r.programOptions...)

	final, err := tea.NewProgram(NewModel(ctx, fm, opts.Control, r.styles), programOptions...).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive: run program: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("interactive: unexpected final model %T", final)
	}
	if !m.Submitted() {
		r.logger.Debug("interactive form left without submit", "cancelled", m.Cancelled())
		return nil, ErrCancelled
	}
	return Values(fm, opts.Control)
}

// Values serialises the controlled fields of fm as JSON with password values
// masked.
func Values(fm model.FormModel, control form.Control) ([]byte, error) {
	controlled := make(map[string]bool)
	for _, path := range control.Paths() {
		controlled[path] = true
	}
	out := make(map[string]string)
	for _, field := range fm.Fields {
		if !controlled[field.Name] {
			continue
		}
		value := control.Value(field.Name)
		if field.Kind == model.InputPassword && value != "" {
			value = maskedValue
		}
		out[field.Name] = value
	}
	return json.Marshal(out)
}
