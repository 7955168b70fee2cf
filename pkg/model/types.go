package model

import internalmodel "github.com/goliatone/go-regform/internal/model"

// InputKind re-exports the internal input kind enumeration.
type InputKind = internalmodel.InputKind

const (
	InputText     = internalmodel.InputText
	InputEmail    = internalmodel.InputEmail
	InputPassword = internalmodel.InputPassword
)

// FieldStatus re-exports the per-field lifecycle states.
type FieldStatus = internalmodel.FieldStatus

const (
	StatusPristine = internalmodel.StatusPristine
	StatusTouched  = internalmodel.StatusTouched
	StatusValid    = internalmodel.StatusValid
	StatusInvalid  = internalmodel.StatusInvalid
)

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// MetadataFieldsEndpoint is the FormModel metadata key for the per-field
// event endpoint prefix.
const MetadataFieldsEndpoint = internalmodel.MetadataFieldsEndpoint
