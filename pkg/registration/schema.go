package registration

import (
	"sync"

	"github.com/goliatone/go-regform/pkg/schema"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Messages shown inline beneath each field.
const (
	MessageNameRequired     = "Name is required"
	MessageEmailRequired    = "Email is required"
	MessageEmailInvalid     = "Invalid email"
	MessagePasswordTooShort = "Password must be at least 6 characters"
	MessagePasswordMismatch = "Passwords do not match"
)

var defaultSchema = sync.OnceValue(buildSchema)

// Schema returns the shared registration schema.
func Schema() *schema.Object[FormRecord] {
	return defaultSchema()
}

// Validate applies the registration schema to record.
func Validate(record FormRecord) schema.Result[FormRecord] {
	return Schema().Validate(record)
}

func buildSchema() *schema.Object[FormRecord] {
	return schema.New[FormRecord]().
		String(FieldName,
			func(r FormRecord) string { return r.Name },
			func(r *FormRecord, v string) { r.Name = v },
			schema.Required(MessageNameRequired),
		).
		String(FieldEmail,
			func(r FormRecord) string { return r.Email },
			func(r *FormRecord, v string) { r.Email = v },
			schema.Required(MessageEmailRequired),
			schema.Email(MessageEmailInvalid),
		).
		String(FieldPassword,
			func(r FormRecord) string { return r.Password },
			func(r *FormRecord, v string) { r.Password = v },
			schema.MinLength(MinPasswordLength, MessagePasswordTooShort),
		).
		String(FieldConfirmPassword,
			func(r FormRecord) string { return r.ConfirmPassword },
			func(r *FormRecord, v string) { r.ConfirmPassword = v },
			schema.MinLength(MinPasswordLength, MessagePasswordTooShort),
		).
		Refine(schema.Refinement[FormRecord]{
			Path:      FieldConfirmPassword,
			Code:      schema.CodeMismatch,
			Message:   MessagePasswordMismatch,
			DependsOn: []string{FieldPassword, FieldConfirmPassword},
			Test: func(r FormRecord) bool {
				return r.Password == r.ConfirmPassword
			},
		})
}
