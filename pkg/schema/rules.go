package schema

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Rule is a single string constraint. Test reports whether the value passes.
type Rule struct {
	Code    string
	Message string
	Test    func(value string) bool
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func tagValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Required rejects the empty string. Whitespace counts as content.
func Required(message string) Rule {
	return Rule{
		Code:    CodeRequired,
		Message: message,
		Test: func(value string) bool {
			return value != ""
		},
	}
}

// MinLength requires at least n characters (runes, not bytes).
func MinLength(n int, message string) Rule {
	return Rule{
		Code:    CodeMinLength,
		Message: message,
		Test: func(value string) bool {
			return utf8.RuneCountInString(value) >= n
		},
	}
}

// MaxLength allows at most n characters.
func MaxLength(n int, message string) Rule {
	return Rule{
		Code:    CodeMaxLength,
		Message: message,
		Test: func(value string) bool {
			return utf8.RuneCountInString(value) <= n
		},
	}
}

// Email checks address syntax with the validator "email" tag. Empty values
// pass so that Required owns the empty case.
func Email(message string) Rule {
	return Rule{
		Code:    CodeEmail,
		Message: message,
		Test: func(value string) bool {
			if value == "" {
				return true
			}
			return tagValidator().Var(value, "email") == nil
		},
	}
}

// Pattern requires the value to match re. Empty values pass.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{
		Code:    CodePattern,
		Message: message,
		Test: func(value string) bool {
			if value == "" || re == nil {
				return true
			}
			return re.MatchString(value)
		},
	}
}
