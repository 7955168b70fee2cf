package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
)

func TestFormModelBuildsRegistrationFields(t *testing.T) {
	orch := New()

	got, err := orch.FormModel(context.Background())
	if err != nil {
		t.Fatalf("form model: %v", err)
	}
	if got.OperationID != registration.OperationID {
		t.Fatalf("operation id: got %q", got.OperationID)
	}
	if diff := cmp.Diff(registration.Fields(), fieldNames(got)); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormModelIsCachedAndCloned(t *testing.T) {
	calls := 0
	document := func(ctx context.Context) (*openapi3.T, error) {
		calls++
		return registration.Document(ctx)
	}
	orch := New(WithDocument(document, ""))

	first, err := orch.FormModel(context.Background())
	if err != nil {
		t.Fatalf("form model: %v", err)
	}
	first.Fields[0].Label = "mutated"

	second, err := orch.FormModel(context.Background())
	if err != nil {
		t.Fatalf("form model: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected document loaded once, got %d", calls)
	}
	if second.Fields[0].Label == "mutated" {
		t.Fatalf("cached model leaked a caller mutation")
	}
}

func TestFormModelPropagatesDocumentError(t *testing.T) {
	boom := errors.New("boom")
	orch := New(WithDocument(func(context.Context) (*openapi3.T, error) { return nil, boom }, ""))

	if _, err := orch.FormModel(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped document error, got %v", err)
	}
}

func TestFormModelUnknownOperation(t *testing.T) {
	orch := New(WithDocument(nil, "deleteUser"))
	if _, err := orch.FormModel(context.Background()); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestGeneratePassesControllerSnapshot(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithDefaultRenderer(renderer.Name()))

	ctrl := form.New(registration.Schema())
	if err := ctrl.Change(registration.FieldEmail, "not-an-email"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := ctrl.Blur(registration.FieldEmail); err != nil {
		t.Fatalf("blur: %v", err)
	}

	if _, err := orch.Generate(context.Background(), Request{Control: ctrl}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	email, ok := renderer.form.Field(registration.FieldEmail)
	if !ok {
		t.Fatalf("email field missing from rendered model")
	}
	if email.Value != "not-an-email" || email.Status != model.StatusInvalid {
		t.Fatalf("unexpected email snapshot: %+v", email)
	}
	if diff := cmp.Diff(ctrl.FieldErrors(registration.FieldEmail), email.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	name, _ := renderer.form.Field(registration.FieldName)
	if name.Status != model.StatusPristine {
		t.Fatalf("expected pristine name, got %q", name.Status)
	}
	if renderer.options.Control != form.Control(ctrl) {
		t.Fatalf("expected control forwarded to render options")
	}
}

func TestGenerateAppliesUIDecorators(t *testing.T) {
	renderer := &captureRenderer{}
	decorator := model.DecoratorFunc(func(form *model.FormModel) error {
		form.Endpoint = "/"
		form.Metadata = map[string]string{model.MetadataFieldsEndpoint: "/fields"}
		return nil
	})
	orch := New(WithRegistry(registryWith(renderer)), WithUIDecorators(decorator))

	if _, err := orch.Generate(context.Background(), Request{Renderer: renderer.Name()}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.form.Endpoint != "/" || renderer.form.Metadata[model.MetadataFieldsEndpoint] != "/fields" {
		t.Fatalf("decorator not applied: %+v", renderer.form)
	}
}

func TestGenerateAppliesUISchemaFS(t *testing.T) {
	fsys := fstest.MapFS{
		"registration.yaml": {Data: []byte(`operations:
  registerUser:
    form:
      title: Join us
    fields:
      name:
        placeholder: Grace Hopper
`)},
	}
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithUISchemaFS(fsys))

	if _, err := orch.Generate(context.Background(), Request{Renderer: renderer.Name()}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.form.Title != "Join us" {
		t.Fatalf("title not applied: %q", renderer.form.Title)
	}
	name, _ := renderer.form.Field(registration.FieldName)
	if name.Placeholder != "Grace Hopper" {
		t.Fatalf("placeholder not applied: %q", name.Placeholder)
	}
}

func TestGenerateSurfacesUISchemaErrors(t *testing.T) {
	fsys := fstest.MapFS{"broken.yaml": {Data: []byte("operations: [")}}
	orch := New(WithUISchemaFS(fsys))

	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected ui schema load error")
	}
}

func TestGenerateDefaultRendererProducesHTML(t *testing.T) {
	orch := New()

	output, err := orch.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	for _, want := range []string{`data-regform`, `name="confirmPassword"`, `/assets/regform.css`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestGenerateField(t *testing.T) {
	orch := New()
	ctrl := form.New(registration.Schema())
	_ = ctrl.Blur(registration.FieldName)

	output, err := orch.GenerateField(context.Background(), Request{Control: ctrl}, registration.FieldName)
	if err != nil {
		t.Fatalf("generate field: %v", err)
	}
	if !strings.Contains(string(output), registration.MessageNameRequired) {
		t.Fatalf("expected required message in fragment:\n%s", output)
	}
	if strings.Contains(string(output), `name="email"`) {
		t.Fatalf("fragment should only contain the requested field:\n%s", output)
	}
}

func TestGenerateFieldRequiresFieldRenderer(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)))

	if _, err := orch.GenerateField(context.Background(), Request{Renderer: renderer.Name()}, registration.FieldName); err == nil {
		t.Fatalf("expected error for renderer without field support")
	}
}

func TestRendererResolution(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithDefaultRenderer("missing"))

	got, err := orch.Renderer("")
	if err != nil {
		t.Fatalf("fallback renderer: %v", err)
	}
	if got.Name() != renderer.Name() {
		t.Fatalf("expected fallback to %q, got %q", renderer.Name(), got.Name())
	}
	if _, err := orch.Renderer("missing"); err == nil {
		t.Fatalf("expected error for explicit unknown renderer")
	}

	empty := New(WithRegistry(render.NewRegistry()))
	if _, err := empty.Renderer(""); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func fieldNames(form model.FormModel) []string {
	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	return names
}

func registryWith(renderers ...render.Renderer) *render.Registry {
	registry := render.NewRegistry()
	for _, renderer := range renderers {
		registry.MustRegister(renderer)
	}
	return registry
}

type captureRenderer struct {
	form    model.FormModel
	options render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	c.form = form
	c.options = options
	return []byte("ok"), nil
}
