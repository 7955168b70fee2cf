package uischema

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the UI schema overrides for a specific operation.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig overrides form-level copy.
type FormConfig struct {
	Title          string            `json:"title" yaml:"title"`
	Subtitle       string            `json:"subtitle" yaml:"subtitle"`
	SubmitLabel    string            `json:"submitLabel" yaml:"submitLabel"`
	SuccessMessage string            `json:"successMessage" yaml:"successMessage"`
	Metadata       map[string]string `json:"metadata" yaml:"metadata"`
}

// FieldConfig overrides the copy of a single field. Empty values keep what
// the form document declares.
type FieldConfig struct {
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText     string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	AutoComplete string            `json:"autoComplete,omitempty" yaml:"autoComplete,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
