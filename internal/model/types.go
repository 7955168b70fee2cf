package model

// InputKind selects the control rendered for a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputPassword InputKind = "password"
)

// FieldStatus tracks where a field sits in its validation lifecycle.
type FieldStatus string

const (
	// StatusPristine: never blurred and never validated.
	StatusPristine FieldStatus = "pristine"
	// StatusTouched: blurred at least once but not validated yet.
	StatusTouched FieldStatus = "touched"
	StatusValid   FieldStatus = "valid"
	StatusInvalid FieldStatus = "invalid"
)

// Field models a single labelled input. Value, Errors and Status are filled
// from a controller snapshot; the remaining attributes come from the form
// document and UI schema overrides.
type Field struct {
	Name         string            `json:"name"`
	Kind         InputKind         `json:"kind"`
	Label        string            `json:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Description  string            `json:"description,omitempty"`
	HelpText     string            `json:"helpText,omitempty"`
	AutoComplete string            `json:"autoComplete,omitempty"`
	Required     bool              `json:"required"`
	MinLength    int               `json:"minLength,omitempty"`
	Value        string            `json:"value,omitempty"`
	Errors       []string          `json:"errors,omitempty"`
	Status       FieldStatus       `json:"status,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Error returns the message displayed beneath the input, if any.
func (f Field) Error() string {
	if len(f.Errors) == 0 {
		return ""
	}
	return f.Errors[0]
}

// MetadataFieldsEndpoint names the FormModel metadata entry holding the URL
// prefix that per-field blur and change events are posted to.
const MetadataFieldsEndpoint = "fields_endpoint"

// FormModel is the top-level structure renderers consume.
type FormModel struct {
	OperationID      string            `json:"operationId"`
	Endpoint         string            `json:"endpoint"`
	Method           string            `json:"method"`
	Title            string            `json:"title,omitempty"`
	Subtitle         string            `json:"subtitle,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	SubmitLabel      string            `json:"submitLabel,omitempty"`
	SuccessMessage   string            `json:"successMessage,omitempty"`
	Fields           []Field           `json:"fields"`
	FormErrors       []string          `json:"formErrors,omitempty"`
	SubmitCount      int               `json:"submitCount,omitempty"`
	Submitted        bool              `json:"submitted,omitempty"`
	SubmitSuccessful bool              `json:"submitSuccessful,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// Field returns a copy of the named field.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldRef returns a pointer into Fields so decorators can edit in place.
func (f *FormModel) FieldRef(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Clone deep-copies the model so per-request state never leaks into a shared
// base model.
func (f FormModel) Clone() FormModel {
	out := f
	out.Metadata = cloneStrings(f.Metadata)
	out.FormErrors = append([]string(nil), f.FormErrors...)
	if f.Fields != nil {
		out.Fields = make([]Field, len(f.Fields))
		for i, field := range f.Fields {
			field.Errors = append([]string(nil), field.Errors...)
			field.Metadata = cloneStrings(field.Metadata)
			out.Fields[i] = field
		}
	}
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
