package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/inconshreveable/log15"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/uischema"
)

// Name is the registry identifier of the prompt renderer.
const Name = "tui"

const (
	defaultMaxAttempts = 5
	maskedValue        = "********"
)

// Renderer implements render.Renderer as a terminal prompt session. Answers
// are fed into the form control in RenderOptions; the rendered output is the
// submitted record.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
	logger       log15.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		logger:       logging.Discard(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every controlled field, re-prompting a field while it
// shows an error, then submits. Fields still invalid after a rejected submit
// are prompted again.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctl := opts.Control
	if ctl == nil {
		return nil, ErrControlRequired
	}

	fields := controlledFields(fm, ctl)
	if err := r.intro(ctx, fm, opts); err != nil {
		return nil, err
	}

	pending := fields
	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, ctl, field); err != nil {
				return nil, err
			}
		}

		ok, err := ctl.SubmitForm(ctx)
		if err != nil {
			return nil, fmt.Errorf("tui: submit: %w", err)
		}
		if ok {
			break
		}

		pending = nil
		for _, field := range fields {
			if len(ctl.FieldErrors(field.Name)) > 0 {
				pending = append(pending, field)
			}
		}
		r.logger.Debug("prompt submit rejected", "attempt", attempt, "invalid", len(pending))
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: form still invalid after %d submits", ErrTooManyAttempts, attempt)
		}
		for _, field := range pending {
			if err := r.error(ctx, field, ctl.FieldErrors(field.Name)[0]); err != nil {
				return nil, err
			}
		}
	}

	if fm.SuccessMessage != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+fm.SuccessMessage); err != nil {
			return nil, err
		}
	}
	return r.serialize(fields, ctl)
}

func (r *Renderer) intro(ctx context.Context, fm model.FormModel, opts render.RenderOptions) error {
	if fm.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+fm.Title); err != nil {
			return err
		}
	}
	for _, msg := range render.MergeFormErrors(fm.FormErrors) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, ctl form.Control, field model.Field) error {
	cfg := InputConfig{
		Message: displayLabel(field),
		Help:    displayHelp(field),
	}
	secret := field.Kind == model.InputPassword

	for attempt := 1; ; attempt++ {
		var (
			answer string
			err    error
		)
		if secret {
			answer, err = r.driver.Password(ctx, cfg)
		} else {
			cfg.Default = ctl.Value(field.Name)
			answer, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if err := ctl.Change(field.Name, answer); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if err := ctl.Blur(field.Name); err != nil {
			return fmt.Errorf("tui: %w", err)
		}

		errs := ctl.FieldErrors(field.Name)
		if len(errs) == 0 {
			return nil
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
		if err := r.error(ctx, field, errs[0]); err != nil {
			return err
		}
	}
}

func (r *Renderer) error(ctx context.Context, field model.Field, msg string) error {
	return r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, displayLabel(field), msg))
}

type entry struct {
	key   string
	value string
}

func (r *Renderer) serialize(fields []model.Field, ctl form.Control) ([]byte, error) {
	entries := make([]entry, 0, len(fields))
	for _, field := range fields {
		value := ctl.Value(field.Name)
		if field.Kind == model.InputPassword && value != "" {
			value = maskedValue
		}
		entries = append(entries, entry{key: field.Name, value: value})
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, e := range entries {
			values.Set(e.key, e.value)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&b, "%s=%s\n", e.key, e.value)
		}
		return []byte(b.String()), nil
	default:
		values := make(map[string]string, len(entries))
		for _, e := range entries {
			values[e.key] = e.value
		}
		return json.Marshal(values)
	}
}

func controlledFields(fm model.FormModel, ctl form.Control) []model.Field {
	controlled := make(map[string]bool)
	for _, path := range ctl.Paths() {
		controlled[path] = true
	}
	out := make([]model.Field, 0, len(fm.Fields))
	for _, field := range fm.Fields {
		if controlled[field.Name] {
			out = append(out, field)
		}
	}
	return out
}

func displayLabel(field model.Field) string {
	label := strings.TrimSuffix(strings.TrimSpace(field.Label), ":")
	if label == "" {
		return field.Name
	}
	return label
}

func displayHelp(field model.Field) string {
	if field.HelpText != "" {
		return uischema.PlainText(field.HelpText)
	}
	return field.Description
}
