package vanilla

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/uischema"
)

type fieldView struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Label        string `json:"label"`
	Placeholder  string `json:"placeholder"`
	AutoComplete string `json:"autoComplete"`
	HelpText     string `json:"helpText"`
	Required     bool   `json:"required"`
	MinLength    string `json:"minLength"`
	Value        string `json:"value"`
	Status       string `json:"status"`
	Invalid      bool   `json:"invalid"`
	Error        string `json:"error"`
	ErrorID      string `json:"errorId"`

	WrapperClass string `json:"wrapperClass"`
	LabelClass   string `json:"labelClass"`
	InputClass   string `json:"inputClass"`
	ErrorClass   string `json:"errorClass"`
	HelpClass    string `json:"helpClass"`
}

func controlID(name string) string {
	return "rf-" + strings.TrimSpace(name)
}

func newFieldView(field model.Field, c classes) fieldView {
	view := fieldView{
		Name:         field.Name,
		ID:           controlID(field.Name),
		Kind:         string(field.Kind),
		Label:        field.Label,
		Placeholder:  field.Placeholder,
		AutoComplete: field.AutoComplete,
		HelpText:     uischema.SanitizeHelpText(field.HelpText),
		Required:     field.Required,
		Value:        field.Value,
		Status:       string(field.Status),
		Error:        field.Error(),
		WrapperClass: c.Field,
		LabelClass:   c.Label,
		InputClass:   c.Input,
		ErrorClass:   c.Error,
		HelpClass:    c.Help,
	}
	if view.Kind == "" {
		view.Kind = string(model.InputText)
	}
	if view.Label == "" {
		view.Label = field.Name
	}
	if field.MinLength > 0 {
		view.MinLength = strconv.Itoa(field.MinLength)
	}
	// Passwords never round-trip through HTML.
	if field.Kind == model.InputPassword {
		view.Value = ""
	}
	if view.Error != "" {
		view.Invalid = true
		view.ErrorID = view.ID + "-error"
		view.InputClass = joinClasses(c.Input, c.InputError)
		view.Status = string(model.StatusInvalid)
	}
	if view.Status == "" {
		view.Status = string(model.StatusPristine)
	}
	return view
}
