package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a path is not declared on the object.
var ErrUnknownField = errors.New("schema: unknown field")

// Refinement is a cross-field constraint. It runs after the field rules, only
// when every DependsOn field holds a non-empty value, and reports its issue on
// Path.
type Refinement[T any] struct {
	Path      string
	Code      string
	Message   string
	DependsOn []string
	Test      func(value T) bool
}

type field[T any] struct {
	path  string
	get   func(T) string
	set   func(*T, string)
	rules []Rule
}

// Object describes a record of string fields. Declare fields and refinements
// once at start-up; validation afterwards only reads the object so it can be
// shared between goroutines.
type Object[T any] struct {
	fields      []field[T]
	index       map[string]int
	refinements []Refinement[T]
}

// New returns an empty object schema.
func New[T any]() *Object[T] {
	return &Object[T]{index: make(map[string]int)}
}

// String declares a string field with accessor functions and its rules in
// evaluation order. Declaring the same path twice panics.
func (o *Object[T]) String(path string, get func(T) string, set func(*T, string), rules ...Rule) *Object[T] {
	if path == "" || get == nil || set == nil {
		panic("schema: field path and accessors are required")
	}
	if _, exists := o.index[path]; exists {
		panic(fmt.Sprintf("schema: field %q already declared", path))
	}
	o.index[path] = len(o.fields)
	o.fields = append(o.fields, field[T]{
		path:  path,
		get:   get,
		set:   set,
		rules: append([]Rule(nil), rules...),
	})
	return o
}

// Refine registers a cross-field refinement. The target and dependency paths
// must already be declared.
func (o *Object[T]) Refine(r Refinement[T]) *Object[T] {
	if r.Test == nil {
		panic("schema: refinement test is required")
	}
	if !o.Has(r.Path) {
		panic(fmt.Sprintf("schema: refinement targets undeclared field %q", r.Path))
	}
	for _, dep := range r.DependsOn {
		if !o.Has(dep) {
			panic(fmt.Sprintf("schema: refinement depends on undeclared field %q", dep))
		}
	}
	r.DependsOn = append([]string(nil), r.DependsOn...)
	o.refinements = append(o.refinements, r)
	return o
}

// Paths lists the declared field paths in declaration order.
func (o *Object[T]) Paths() []string {
	out := make([]string, 0, len(o.fields))
	for _, f := range o.fields {
		out = append(out, f.path)
	}
	return out
}

// Has reports whether path is declared.
func (o *Object[T]) Has(path string) bool {
	_, ok := o.index[path]
	return ok
}

// Get reads the raw value of path.
func (o *Object[T]) Get(value T, path string) (string, bool) {
	idx, ok := o.index[path]
	if !ok {
		return "", false
	}
	return o.fields[idx].get(value), true
}

// Set writes raw into path.
func (o *Object[T]) Set(value *T, path, raw string) error {
	idx, ok := o.index[path]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	if value == nil {
		return errors.New("schema: set on nil value")
	}
	o.fields[idx].set(value, raw)
	return nil
}

// Validate runs every field rule followed by the refinements. Rules are never
// short-circuited, so a field can report more than one issue.
func (o *Object[T]) Validate(value T) Result[T] {
	var issues []Issue
	for _, f := range o.fields {
		issues = append(issues, f.check(value)...)
	}
	for _, r := range o.refinements {
		if issue, failed := o.refine(value, r); failed {
			issues = append(issues, issue)
		}
	}
	return Result[T]{Value: value, Issues: issues}
}

// ValidateField returns the issues attributed to path: its own rules plus any
// refinement reported on it.
func (o *Object[T]) ValidateField(value T, path string) ([]Issue, error) {
	idx, ok := o.index[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	issues := o.fields[idx].check(value)
	for _, r := range o.refinements {
		if r.Path != path {
			continue
		}
		if issue, failed := o.refine(value, r); failed {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// Dependents lists the fields, other than path itself, whose refinements read
// path. Changing path can change their outcome.
func (o *Object[T]) Dependents(path string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range o.refinements {
		if r.Path == path {
			continue
		}
		for _, dep := range r.DependsOn {
			if dep != path {
				continue
			}
			if _, exists := seen[r.Path]; !exists {
				seen[r.Path] = struct{}{}
				out = append(out, r.Path)
			}
		}
	}
	return out
}

func (f field[T]) check(value T) []Issue {
	raw := f.get(value)
	var issues []Issue
	for _, rule := range f.rules {
		if rule.Test == nil || rule.Test(raw) {
			continue
		}
		issues = append(issues, Issue{Path: f.path, Code: rule.Code, Message: rule.Message})
	}
	return issues
}

func (o *Object[T]) refine(value T, r Refinement[T]) (Issue, bool) {
	for _, dep := range r.DependsOn {
		if raw, _ := o.Get(value, dep); raw == "" {
			return Issue{}, false
		}
	}
	if r.Test(value) {
		return Issue{}, false
	}
	return Issue{Path: r.Path, Code: r.Code, Message: r.Message}, true
}
