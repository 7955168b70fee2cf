package registration

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/schema"
)

func TestDocumentAgreesWithSchema(t *testing.T) {
	requestSchema, err := RequestSchema(context.Background())
	if err != nil {
		t.Fatalf("request schema: %v", err)
	}

	if diff := cmp.Diff(Fields(), requestSchema.Required); diff != "" {
		t.Fatalf("required list mismatch (-want +got):\n%s", diff)
	}
	for _, path := range Fields() {
		prop, ok := requestSchema.Properties[path]
		if !ok || prop.Value == nil {
			t.Fatalf("property %s missing from document", path)
		}
	}
	for _, path := range []string{FieldPassword, FieldConfirmPassword} {
		if got := requestSchema.Properties[path].Value.MinLength; got != MinPasswordLength {
			t.Fatalf("%s minLength: want %d, got %d", path, MinPasswordLength, got)
		}
	}
	if got := requestSchema.Properties[FieldEmail].Value.Format; got != "email" {
		t.Fatalf("email format: want email, got %q", got)
	}
}

func TestRequestSchemaIsLoadedOnce(t *testing.T) {
	first, err := RequestSchema(context.Background())
	if err != nil {
		t.Fatalf("request schema: %v", err)
	}
	second, err := RequestSchema(context.Background())
	if err != nil {
		t.Fatalf("request schema: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached schema to be reused")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RequestSchema(ctx); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestCheckShape(t *testing.T) {
	ctx := context.Background()

	issues, err := CheckShape(ctx, map[string]any{
		"name":            "Jo",
		"email":           "a@b.com",
		"password":        "abcdef",
		"confirmPassword": "abcdef",
	})
	if err != nil {
		t.Fatalf("check shape: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no shape issues, got %v", issues)
	}

	issues, err = CheckShape(ctx, map[string]any{"name": 42.0, "email": ""})
	if err != nil {
		t.Fatalf("check shape: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected one type issue (content rules are ignored), got %v", issues)
	}
	if issues[0].Path != "/name" || issues[0].Code != CodeType {
		t.Fatalf("unexpected issue: %+v", issues[0])
	}

	issues, err = CheckShape(ctx, map[string]any{"nickname": "jo"})
	if err != nil {
		t.Fatalf("check shape: %v", err)
	}
	found := false
	for _, issue := range issues {
		if issue.Code == CodeUnknown && strings.Contains(issue.Message, "nickname") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown field issue, got %v", issues)
	}
}

func TestDecode(t *testing.T) {
	record, err := Decode(map[string]any{
		"name":     "Jo",
		"email":    "a@b.com",
		"password": "abcdef",
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := FormRecord{Name: "Jo", Email: "a@b.com", Password: "abcdef"}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	result := Validate(record)
	if got := result.FirstErrors()[FieldConfirmPassword]; got != MessagePasswordTooShort {
		t.Fatalf("missing confirmPassword should fail length rule, got %q", got)
	}
	if len(result.For(FieldConfirmPassword)) != 1 || result.For(FieldConfirmPassword)[0].Code != schema.CodeMinLength {
		t.Fatalf("mismatch rule must not run when confirmPassword is empty: %v", result.Issues)
	}

	if _, err := Decode(map[string]any{"unknown": "x"}); err == nil {
		t.Fatalf("expected error for unused keys")
	}
}
