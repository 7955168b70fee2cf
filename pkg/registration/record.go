package registration

// Field paths of the registration record.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

const redactedSecret = "[redacted]"

// FormRecord holds the raw values of the registration form.
type FormRecord struct {
	Name            string `json:"name" mapstructure:"name"`
	Email           string `json:"email" mapstructure:"email"`
	Password        string `json:"password" mapstructure:"password"`
	ConfirmPassword string `json:"confirmPassword" mapstructure:"confirmPassword"`
}

// Fields lists the field paths in display order.
func Fields() []string {
	return []string{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}
}

// IsSecret reports whether the field holds a password.
func IsSecret(path string) bool {
	return path == FieldPassword || path == FieldConfirmPassword
}

// Redacted returns a copy safe to log or echo: non-empty passwords are
// replaced with a fixed marker.
func (r FormRecord) Redacted() FormRecord {
	out := r
	if out.Password != "" {
		out.Password = redactedSecret
	}
	if out.ConfirmPassword != "" {
		out.ConfirmPassword = redactedSecret
	}
	return out
}
