package schema

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type account struct {
	Handle  string
	Email   string
	Pin     string
	Confirm string
}

func accountSchema() *Object[account] {
	return New[account]().
		String("handle",
			func(a account) string { return a.Handle },
			func(a *account, v string) { a.Handle = v },
			Required("handle required"),
			Pattern(regexp.MustCompile(`^[a-z]+$`), "lowercase only"),
			MaxLength(8, "too long"),
		).
		String("email",
			func(a account) string { return a.Email },
			func(a *account, v string) { a.Email = v },
			Required("email required"),
			Email("bad email"),
		).
		String("pin",
			func(a account) string { return a.Pin },
			func(a *account, v string) { a.Pin = v },
			MinLength(4, "pin too short"),
		).
		String("confirm",
			func(a account) string { return a.Confirm },
			func(a *account, v string) { a.Confirm = v },
			MinLength(4, "pin too short"),
		).
		Refine(Refinement[account]{
			Path:      "confirm",
			Code:      CodeMismatch,
			Message:   "pins differ",
			DependsOn: []string{"pin", "confirm"},
			Test:      func(a account) bool { return a.Pin == a.Confirm },
		})
}

func TestObjectValidateRunsEveryRule(t *testing.T) {
	s := accountSchema()

	result := s.Validate(account{Handle: "ABCDEFGHIJ", Email: "", Pin: "12", Confirm: "123"})

	want := []Issue{
		{Path: "handle", Code: CodePattern, Message: "lowercase only"},
		{Path: "handle", Code: CodeMaxLength, Message: "too long"},
		{Path: "email", Code: CodeRequired, Message: "email required"},
		{Path: "pin", Code: CodeMinLength, Message: "pin too short"},
		{Path: "confirm", Code: CodeMinLength, Message: "pin too short"},
		{Path: "confirm", Code: CodeMismatch, Message: "pins differ"},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}
}

func TestObjectRefinementSkipsEmptyDependencies(t *testing.T) {
	s := accountSchema()

	result := s.Validate(account{Handle: "jo", Email: "jo@example.com", Pin: "1234", Confirm: ""})

	want := map[string][]string{"confirm": {"pin too short"}}
	if diff := cmp.Diff(want, result.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectValidResult(t *testing.T) {
	s := accountSchema()
	value := account{Handle: "jo", Email: "jo@example.com", Pin: "1234", Confirm: "1234"}

	result := s.Validate(value)

	if !result.Valid() {
		t.Fatalf("expected valid, got %v", result.Issues)
	}
	if result.Err() != nil {
		t.Fatalf("expected nil error, got %v", result.Err())
	}
	if result.Errors() != nil || result.FirstErrors() != nil {
		t.Fatalf("expected nil error maps for valid result")
	}
	if diff := cmp.Diff(value, result.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestResultFirstErrorsKeepsDeclarationOrder(t *testing.T) {
	s := accountSchema()

	result := s.Validate(account{Handle: "jo", Email: "jo@example.com", Pin: "1234", Confirm: "12"})

	want := map[string]string{"confirm": "pin too short"}
	if diff := cmp.Diff(want, result.FirstErrors()); diff != "" {
		t.Fatalf("first errors mismatch (-want +got):\n%s", diff)
	}
}

func TestResultErrUnwrapsIssues(t *testing.T) {
	s := accountSchema()

	err := s.Validate(account{}).Err()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	var issue Issue
	if !errors.As(err, &issue) {
		t.Fatalf("expected issue to be reachable through errors.As")
	}
	if issue.Path != "handle" {
		t.Fatalf("first unwrapped issue: want handle, got %q", issue.Path)
	}
}

func TestObjectSetGetAndUnknownField(t *testing.T) {
	s := accountSchema()
	var value account

	if err := s.Set(&value, "email", "jo@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := s.Get(value, "email")
	if !ok || got != "jo@example.com" {
		t.Fatalf("get: want jo@example.com, got %q (ok=%v)", got, ok)
	}

	err := s.Set(&value, "nickname", "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := s.ValidateField(value, "nickname"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from ValidateField, got %v", err)
	}
}

func TestObjectValidateFieldIncludesRefinements(t *testing.T) {
	s := accountSchema()

	issues, err := s.ValidateField(account{Pin: "12345", Confirm: "54321"}, "confirm")
	if err != nil {
		t.Fatalf("validate field: %v", err)
	}

	want := []Issue{{Path: "confirm", Code: CodeMismatch, Message: "pins differ"}}
	if diff := cmp.Diff(want, issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectDependents(t *testing.T) {
	s := accountSchema()

	if diff := cmp.Diff([]string{"confirm"}, s.Dependents("pin")); diff != "" {
		t.Fatalf("dependents of pin (-want +got):\n%s", diff)
	}
	if got := s.Dependents("confirm"); len(got) != 0 {
		t.Fatalf("confirm should not depend on itself, got %v", got)
	}
	if diff := cmp.Diff([]string{"handle", "email", "pin", "confirm"}, s.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectPanicsOnDuplicateField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for duplicate field")
		}
	}()
	New[account]().
		String("handle", func(a account) string { return a.Handle }, func(a *account, v string) { a.Handle = v }).
		String("handle", func(a account) string { return a.Handle }, func(a *account, v string) { a.Handle = v })
}

func TestEmailRule(t *testing.T) {
	rule := Email("bad")
	cases := map[string]bool{
		"":                  true,
		"a@b.com":           true,
		"first.last@ex.org": true,
		"bad-email":         false,
		"a@":                false,
		"@b.com":            false,
		"a b@c.com":         false,
	}
	for input, want := range cases {
		if got := rule.Test(input); got != want {
			t.Errorf("Email(%q): want %v, got %v", input, want, got)
		}
	}
}

func TestMinLengthCountsRunes(t *testing.T) {
	rule := MinLength(3, "short")
	if !rule.Test("äöü") {
		t.Fatalf("three runes should satisfy min length 3")
	}
	if rule.Test("äö") {
		t.Fatalf("two runes should fail min length 3")
	}
}

func TestCustomStringRule(t *testing.T) {
	noSpaces := Rule{
		Code:    "no_spaces",
		Message: "no spaces allowed",
		Test:    func(value string) bool { return !regexp.MustCompile(`\s`).MatchString(value) },
	}
	s := New[account]().String("handle",
		func(a account) string { return a.Handle },
		func(a *account, v string) { a.Handle = v },
		noSpaces,
	)

	got := s.Validate(account{Handle: "ada lovelace"}).Issues
	want := []Issue{{Path: "handle", Code: "no_spaces", Message: "no spaces allowed"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if !s.Validate(account{Handle: "ada"}).Valid() {
		t.Fatalf("expected handle without spaces to pass")
	}
}
