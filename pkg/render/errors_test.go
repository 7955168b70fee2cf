package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

func registrationModel() model.FormModel {
	return model.FormModel{
		Fields: []model.Field{
			{Name: "name", Kind: model.InputText},
			{Name: "email", Kind: model.InputEmail},
			{Name: "password", Kind: model.InputPassword},
			{Name: "confirmPassword", Kind: model.InputPassword},
		},
	}
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/name":           {"Name is required"},
		"body.email":           {"Invalid email", " Invalid email "},
		"$.confirmPassword":    {"Passwords do not match"},
		"non_field_errors":     {"Form level error"},
		"request/body/unknown": {"Should fall back to form errors"},
		"password/extra":       {"Nested paths are form level"},
		"":                     {"Unscoped form error"},
		"name":                 {"  "},
	}

	mapped := render.MapErrorPayload(registrationModel(), payload)

	wantFields := map[string][]string{
		"name":            {"Name is required"},
		"email":           {"Invalid email"},
		"confirmPassword": {"Passwords do not match"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Nested paths are form level", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
