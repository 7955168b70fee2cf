package form

import (
	"fmt"
	"strings"
)

// Mode decides which interactions validate a field before the first submit.
type Mode string

const (
	// OnBlur validates a field when it loses focus.
	OnBlur Mode = "onBlur"
	// OnChange validates on every value change.
	OnChange Mode = "onChange"
	// OnSubmit defers all validation to submit.
	OnSubmit Mode = "onSubmit"
	// OnTouched validates on the first blur, then on every change.
	OnTouched Mode = "onTouched"
	// OnAll validates on both blur and change.
	OnAll Mode = "all"
)

// ReValidateMode decides which interactions re-validate after a submit
// attempt.
type ReValidateMode string

const (
	ReValidateOnChange ReValidateMode = "onChange"
	ReValidateOnBlur   ReValidateMode = "onBlur"
	ReValidateOnSubmit ReValidateMode = "onSubmit"
)

// Trigger names the interaction that caused a validation run.
type Trigger string

const (
	TriggerChange Trigger = "change"
	TriggerBlur   Trigger = "blur"
	TriggerSubmit Trigger = "submit"
	TriggerManual Trigger = "manual"
)

// ParseMode accepts the mode names case-insensitively.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "onblur", "blur":
		return OnBlur, nil
	case "onchange", "change":
		return OnChange, nil
	case "onsubmit", "submit":
		return OnSubmit, nil
	case "ontouched", "touched":
		return OnTouched, nil
	case "all", "onall":
		return OnAll, nil
	default:
		return "", fmt.Errorf("form: unknown mode %q", raw)
	}
}

// ParseReValidateMode accepts the re-validate mode names case-insensitively.
func ParseReValidateMode(raw string) (ReValidateMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "onchange", "change":
		return ReValidateOnChange, nil
	case "onblur", "blur":
		return ReValidateOnBlur, nil
	case "onsubmit", "submit":
		return ReValidateOnSubmit, nil
	default:
		return "", fmt.Errorf("form: unknown revalidate mode %q", raw)
	}
}

// shouldValidate reports whether trigger validates under the configured
// policy. touched is the touch state of the field involved.
func shouldValidate(mode Mode, revalidate ReValidateMode, trigger Trigger, touched, submitted bool) bool {
	switch trigger {
	case TriggerSubmit, TriggerManual:
		return true
	}
	if mode == OnAll {
		return true
	}
	if submitted {
		switch revalidate {
		case ReValidateOnBlur:
			return trigger == TriggerBlur
		case ReValidateOnSubmit:
			return false
		default:
			return trigger == TriggerChange
		}
	}
	switch mode {
	case OnChange:
		return trigger == TriggerChange
	case OnSubmit:
		return false
	case OnTouched:
		return trigger == TriggerBlur || touched
	default:
		return trigger == TriggerBlur
	}
}
