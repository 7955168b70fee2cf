package vanilla

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

func registrationForm() model.FormModel {
	return model.FormModel{
		OperationID:    "registerUser",
		Endpoint:       "/register",
		Method:         "POST",
		Title:          "Register",
		SubmitLabel:    "submit",
		SuccessMessage: "Thanks for registering",
		Fields: []model.Field{
			{Name: "name", Kind: model.InputText, Label: "Name:", Placeholder: "Jhon Doe", Required: true, MinLength: 1},
			{Name: "email", Kind: model.InputEmail, Label: "Email:", Required: true},
			{Name: "password", Kind: model.InputPassword, Label: "Password:", Required: true, MinLength: 6},
			{Name: "confirmPassword", Kind: model.InputPassword, Label: "Confirm Password:", Required: true, MinLength: 6},
		},
		Metadata: map[string]string{model.MetadataFieldsEndpoint: "/fields"},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRenderer_PristineForm(t *testing.T) {
	out, err := newTestRenderer(t).Render(context.Background(), registrationForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<form id="regform-registerUser"`,
		`action="/register" method="post" novalidate data-regform data-regform-fields="/fields"`,
		`<h1 class="text-2xl font-semibold text-slate-700">Register</h1>`,
		`<label for="rf-name" class="text-slate-600">Name:</label>`,
		`placeholder="Jhon Doe"`,
		`type="email"`,
		`minlength="6"`,
		`data-regform-field="confirmPassword" data-status="pristine"`,
		`<button type="submit"`,
		`>submit</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	for _, unwanted := range []string{"aria-invalid", "border-2", `role="alert"`, "<script"} {
		if strings.Contains(html, unwanted) {
			t.Fatalf("pristine form should not contain %q:\n%s", unwanted, html)
		}
	}
	if strings.Index(html, `name="name"`) > strings.Index(html, `name="email"`) {
		t.Fatalf("fields rendered out of order")
	}
}

func TestRenderer_InvalidFieldShowsBorderAndMessage(t *testing.T) {
	form := registrationForm()
	form.Fields[1].Value = "bad"
	form.Fields[1].Errors = []string{"Invalid email", "secondary"}
	form.Fields[1].Status = model.StatusInvalid

	out, err := newTestRenderer(t).RenderField(context.Background(), form, "email", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`data-status="invalid"`,
		`class="rounded-2xl p-2 border border-red-900 border-2"`,
		`value="bad"`,
		`aria-invalid="true" aria-describedby="rf-email-error"`,
		`<p id="rf-email-error" class="text-red-900" role="alert">Invalid email</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "secondary") {
		t.Fatalf("only the first message is displayed:\n%s", html)
	}
	if strings.Contains(html, "<form") {
		t.Fatalf("field fragment must not include the form wrapper")
	}
}

func TestRenderer_PasswordsNotEchoed(t *testing.T) {
	form := registrationForm()
	form.Fields[2].Value = "hunter22"

	renderer := newTestRenderer(t)
	out, err := renderer.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "hunter22") {
		t.Fatalf("password value leaked into html")
	}

	out, err = renderer.RenderField(context.Background(), form, "password", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	if strings.Contains(string(out), "hunter22") {
		t.Fatalf("password value leaked into field fragment")
	}
}

func TestRenderer_ModelErrorsAndHidden(t *testing.T) {
	form := registrationForm()
	form.Fields[0].Value = "Ann"
	form.Fields[1].Value = "a@b.com"
	form.Fields[1].Errors = []string{"Email already registered"}
	form.FormErrors = []string{"Please try again", "Service unavailable"}

	out, err := newTestRenderer(t).Render(context.Background(), form, render.RenderOptions{
		HiddenFields: map[string]string{"_session": "s1", "_csrf": "<tok>"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`value="Ann"`,
		`value="a@b.com"`,
		`role="alert">Email already registered</p>`,
		`<li>Please try again</li>`,
		`<li>Service unavailable</li>`,
		`<input type="hidden" name="_csrf" value="&lt;tok&gt;">`,
		`<input type="hidden" name="_session" value="s1">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Index(html, `name="_csrf"`) > strings.Index(html, `name="_session"`) {
		t.Fatalf("hidden fields should be sorted")
	}
}

func TestRenderer_ThemeConfig(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   ThemeName,
		Variant: "dark",
		Tokens: map[string]string{
			TokenLabel: "label-dark",
		},
		CSSVars: map[string]string{"--brand": "#123456"},
		AssetURL: func(key string) string {
			return "/assets/" + key + ".bundle"
		},
	}

	form := registrationForm()
	form.SubmitSuccessful = true
	out, err := newTestRenderer(t).Render(context.Background(), form, render.RenderOptions{Theme: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`class="label-dark"`,
		`data-theme="regform dark"`,
		`style="--brand: #123456"`,
		`<link rel="stylesheet" href="/assets/stylesheet.bundle">`,
		`<script src="/assets/runtime.bundle" defer></script>`,
		`role="status">Thanks for registering</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderer_HelpTextIsSanitised(t *testing.T) {
	form := registrationForm()
	form.Fields[2].HelpText = `At least <b>6</b> characters<img src=x onerror="alert(1)">`

	out, err := newTestRenderer(t).RenderField(context.Background(), form, "password", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render field: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<small class="text-xs text-slate-500">At least <b>6</b> characters</small>`) {
		t.Fatalf("expected sanitised help text:\n%s", html)
	}
	if strings.Contains(html, "onerror") {
		t.Fatalf("unsafe markup survived:\n%s", html)
	}
}

func TestRenderer_UnknownField(t *testing.T) {
	if _, err := newTestRenderer(t).RenderField(context.Background(), registrationForm(), "nickname", render.RenderOptions{}); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFormMethod(t *testing.T) {
	cases := []struct {
		declared, override, want string
	}{
		{declared: "POST", want: "post"},
		{declared: "PUT", want: "post"},
		{declared: "POST", override: "get", want: "get"},
		{want: "post"},
	}
	for _, tc := range cases {
		if got := formMethod(tc.declared, tc.override); got != tc.want {
			t.Fatalf("formMethod(%q, %q) = %q, want %q", tc.declared, tc.override, got, tc.want)
		}
	}
}
