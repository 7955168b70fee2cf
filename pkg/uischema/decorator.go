package uischema

import (
	"fmt"

	pkgmodel "github.com/goliatone/go-regform/pkg/model"
)

// Decorator applies UI schema overrides to a form model.
type Decorator struct {
	store *Store
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate overrides form and field copy. A field key the form does not
// declare is an error so typos in the document surface at startup.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	applyFormConfig(form, op.Form)
	for name, cfg := range op.Fields {
		field := form.FieldRef(name)
		if field == nil {
			return fmt.Errorf("uischema: operation %q (file %s) references unknown field %q", op.ID, op.Source, name)
		}
		applyFieldConfig(field, cfg)
	}
	return nil
}

func applyFormConfig(form *pkgmodel.FormModel, cfg FormConfig) {
	if cfg.Title != "" {
		form.Title = cfg.Title
	}
	if cfg.Subtitle != "" {
		form.Subtitle = cfg.Subtitle
	}
	if cfg.SubmitLabel != "" {
		form.SubmitLabel = cfg.SubmitLabel
	}
	if cfg.SuccessMessage != "" {
		form.SuccessMessage = cfg.SuccessMessage
	}
	form.Metadata = mergeStringMap(form.Metadata, cfg.Metadata)
}

func applyFieldConfig(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	if cfg.HelpText != "" {
		field.HelpText = cfg.HelpText
	}
	if cfg.AutoComplete != "" {
		field.AutoComplete = cfg.AutoComplete
	}
	field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
