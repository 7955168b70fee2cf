package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tmpl and templates/field.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits server-rendered HTML. Each field is a self-contained
// fragment keyed by data-regform-field so the browser runtime can swap it
// after a blur or change.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.FieldRenderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type formView struct {
	ID             string       `json:"id"`
	Action         string       `json:"action"`
	Method         string       `json:"method"`
	Title          string       `json:"title"`
	Subtitle       string       `json:"subtitle"`
	Success        string       `json:"success"`
	SubmitLabel    string       `json:"submitLabel"`
	FormErrors     []string     `json:"formErrors"`
	Hidden         []hiddenView `json:"hidden"`
	Fields         []string     `json:"fields"`
	FieldsEndpoint string       `json:"fieldsEndpoint"`
	Classes        classes      `json:"classes"`
	Theme          string       `json:"theme"`
	CSSVars        string       `json:"cssVars"`
	Stylesheet     string       `json:"stylesheet"`
	Script         string       `json:"script"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Render emits the whole form: header, form-level errors, hidden inputs, one
// fragment per field and the submit button.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	c := resolveClasses(options.Theme)

	view := formView{
		ID:             "regform-" + form.OperationID,
		Action:         form.Endpoint,
		Method:         formMethod(form.Method, options.Method),
		Title:          form.Title,
		Subtitle:       form.Subtitle,
		SubmitLabel:    form.SubmitLabel,
		FormErrors:     form.FormErrors,
		FieldsEndpoint: form.Metadata[model.MetadataFieldsEndpoint],
		Classes:        c,
		CSSVars:        cssVarsStyle(options.Theme),
		Stylesheet:     assetURL(options.Theme, AssetStylesheet),
		Script:         assetURL(options.Theme, AssetRuntime),
	}
	if form.OperationID == "" {
		view.ID = "regform"
	}
	if form.SubmitSuccessful {
		view.Success = form.SuccessMessage
	}
	if options.Theme != nil {
		view.Theme = strings.TrimSpace(options.Theme.Theme + " " + options.Theme.Variant)
	}
	for _, hidden := range render.SortedHiddenFields(options.HiddenFields) {
		view.Hidden = append(view.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}

	for _, field := range form.Fields {
		markup, err := r.renderField(field, c)
		if err != nil {
			return nil, err
		}
		view.Fields = append(view.Fields, markup)
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{"form": view})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderField emits the fragment for a single field.
func (r *Renderer) RenderField(_ context.Context, form model.FormModel, name string, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	field, ok := form.Field(name)
	if !ok {
		return nil, fmt.Errorf("vanilla renderer: unknown field %q", name)
	}
	markup, err := r.renderField(field, resolveClasses(options.Theme))
	if err != nil {
		return nil, err
	}
	return []byte(markup), nil
}

func (r *Renderer) renderField(field model.Field, c classes) (string, error) {
	out, err := r.templates.RenderTemplate(fieldTemplate, map[string]any{
		"field": newFieldView(field, c),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}
	return out, nil
}

// formMethod maps the requested verb onto GET or POST, the only methods an
// HTML form can submit.
func formMethod(declared, override string) string {
	method := strings.ToUpper(strings.TrimSpace(override))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(declared))
	}
	if method == "GET" {
		return "get"
	}
	return "post"
}
