package template_test

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_StructsUseJSONKeys(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("field", map[string]any{
		"field": model.Field{Name: "email", Label: " Email: ", Errors: []string{"Invalid email", "other"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<label>Email:</label><p>Invalid email</p>\n"; result != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	if _, err := newEngine(t).RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
