package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	theme "github.com/goliatone/go-theme"
	"github.com/inconshreveable/log15"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/internal/openapi/parser"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/uischema"
)

const defaultRendererName = vanilla.Name

// DocumentFunc loads the OpenAPI document the form is built from.
type DocumentFunc func(ctx context.Context) (*openapi3.T, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDocument replaces the embedded registration document.
func WithDocument(fn DocumentFunc, operationID string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.document = fn
		}
		if operationID != "" {
			o.operationID = operationID
		}
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithUIDecorators registers decorators that run against the built form model
// before it is cached.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS loads UI schema documents from fsys and applies them as a
// decorator. Load errors surface from the first Generate call.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		store, err := uischema.LoadFS(fsys)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
			return
		}
		if !store.Empty() {
			o.decorators = append(o.decorators, uischema.NewDecorator(store))
		}
	}
}

// WithThemeSelector sets the selector used to resolve theme and variant names.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithTheme sets the theme and variant used when a request names none.
func WithTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithLogger attaches a logger.
func WithLogger(logger log15.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from form document to rendered
// output. Defaults: the embedded registration document, the built-in model
// builder, the vanilla renderer and the built-in theme manifest.
type Orchestrator struct {
	document        DocumentFunc
	operationID     string
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	logger          log15.Logger
	initialiseErr   error

	mu   sync.Mutex
	base *model.FormModel
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		document:        registration.Document,
		operationID:     registration.OperationID,
		defaultRenderer: defaultRendererName,
		logger:          logging.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Control supplies values, errors and field states. Without it the form
	// renders pristine.
	Control form.Control

	// RenderOptions carries per-request instructions such as hidden fields or
	// server-side errors. A nil Theme is resolved from ThemeName and
	// ThemeVariant.
	RenderOptions render.RenderOptions

	ThemeName    string
	ThemeVariant string
}

// FormModel returns a copy of the decorated base model.
func (o *Orchestrator) FormModel(ctx context.Context) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.base != nil {
		return o.base.Clone(), nil
	}

	doc, err := o.document(ctx)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	op, err := parser.Lookup(ctx, doc, o.operationID)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: %w", err)
	}
	built, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&built); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}

	o.base = &built
	o.logger.Debug("form model built", "operation", built.OperationID, "fields", len(built.Fields))
	return built.Clone(), nil
}

// Model returns the base model with the state of control overlaid.
func (o *Orchestrator) Model(ctx context.Context, control form.Control) (model.FormModel, error) {
	base, err := o.FormModel(ctx)
	if err != nil {
		return model.FormModel{}, err
	}
	if control == nil {
		return base, nil
	}
	return control.Snapshot(base), nil
}

// Generate renders the whole form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, renderer, options, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("form rendered", "renderer", renderer.Name(), "bytes", len(output))
	return output, nil
}

// GenerateField renders a single field fragment. The renderer must implement
// render.FieldRenderer.
func (o *Orchestrator) GenerateField(ctx context.Context, req Request, field string) ([]byte, error) {
	form, renderer, options, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	fieldRenderer, ok := renderer.(render.FieldRenderer)
	if !ok {
		return nil, fmt.Errorf("orchestrator: renderer %q cannot render single fields", renderer.Name())
	}

	output, err := fieldRenderer.RenderField(ctx, form, field, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render field %q: %w", field, err)
	}
	return output, nil
}

// Renderer resolves a renderer by name, falling back to the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (model.FormModel, render.Renderer, render.RenderOptions, error) {
	var options render.RenderOptions
	if ctx == nil {
		return model.FormModel{}, nil, options, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, nil, options, err
	}

	form, err := o.Model(ctx, req.Control)
	if err != nil {
		return model.FormModel{}, nil, options, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return model.FormModel{}, nil, options, err
	}

	options = req.RenderOptions
	if options.Control == nil {
		options.Control = req.Control
	}
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return model.FormModel{}, nil, options, err
		}
		options.Theme = cfg
	}
	return form, renderer, options, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.selector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.themeName
	}
	if variant == "" {
		variant = o.themeVariant
	}
	selection, err := o.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	return RendererConfig(selection)
}

func (o *Orchestrator) applyDefaults() {
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.selector == nil {
		o.selector = NewStaticSelector(vanilla.DefaultManifest())
	}
}
