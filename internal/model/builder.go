package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/internal/openapi/parser"
)

const (
	extensionPlaceholder  = "x-regform-placeholder"
	extensionAutoComplete = "x-regform-autocomplete"
	extensionSubmitLabel  = "x-regform-submit-label"
	extensionHelpText     = "x-regform-help-text"
)

// Builder converts an OpenAPI operation into a flat FormModel.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.SubmitLabel != "" {
		opts.SubmitLabel = options.SubmitLabel
	}
	return &Builder{opts: opts}
}

// Build reads the request body schema of op. Required properties come first
// in the order the document lists them, followed by optional properties in
// name order.
func (b *Builder) Build(op parser.Operation) (FormModel, error) {
	if op.ID == "" {
		return FormModel{}, errors.New("model builder: operation id is required")
	}
	schema := op.RequestSchema
	if schema == nil {
		return FormModel{}, fmt.Errorf("model builder: operation %q has no request schema", op.ID)
	}
	if !schema.Type.Is(openapi3.TypeObject) && len(schema.Properties) == 0 {
		return FormModel{}, fmt.Errorf("model builder: operation %q request body is not an object", op.ID)
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Title:       schema.Title,
		Summary:     op.Summary,
		SubmitLabel: stringExtension(op.Extensions, extensionSubmitLabel),
	}
	if form.Title == "" {
		form.Title = op.Summary
	}
	if form.SubmitLabel == "" {
		form.SubmitLabel = b.opts.SubmitLabel
	}
	if op.Description != "" {
		form.Metadata = map[string]string{"description": op.Description}
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	for _, name := range propertyOrder(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if !prop.Type.Is(openapi3.TypeString) {
			return FormModel{}, fmt.Errorf("model builder: field %q must be a string, got %v", name, prop.Type.Slice())
		}
		_, isRequired := required[name]
		form.Fields = append(form.Fields, b.field(name, prop, isRequired))
	}
	if len(form.Fields) == 0 {
		return FormModel{}, fmt.Errorf("model builder: operation %q declares no fields", op.ID)
	}
	return form, nil
}

func (b *Builder) field(name string, prop *openapi3.Schema, required bool) Field {
	field := Field{
		Name:         name,
		Kind:         kindFromFormat(prop.Format),
		Label:        prop.Title,
		Description:  prop.Description,
		Placeholder:  stringExtension(prop.Extensions, extensionPlaceholder),
		AutoComplete: stringExtension(prop.Extensions, extensionAutoComplete),
		HelpText:     stringExtension(prop.Extensions, extensionHelpText),
		Required:     required,
		MinLength:    int(prop.MinLength),
		Status:       StatusPristine,
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}
	return field
}

func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(schema.Properties))
	order := make([]string, 0, len(schema.Properties))
	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		order = append(order, name)
	}

	var optional []string
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	return append(order, optional...)
}

func kindFromFormat(format string) InputKind {
	switch strings.ToLower(format) {
	case "email":
		return InputEmail
	case "password":
		return InputPassword
	default:
		return InputText
	}
}

func stringExtension(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	switch value := extensions[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}
