package validator

import (
	"strings"
	"unicode"
)

// DefaultSpecialChars is the special-character set required by Password when
// none is configured.
const DefaultSpecialChars = `!@#$%^&*(),.?":{}|<>`

// Password runs five independent strength checks in fixed order, short
// circuiting on the first failure: length, digit, lowercase, uppercase,
// special character.
type Password struct {
	// SpecialChars overrides the accepted special-character set.
	SpecialChars string
}

// Validate returns the password unchanged on full success.
func (v Password) Validate(value string) (string, error) {
	if len(value) < 8 {
		return "", newError(CodeTooShort, "password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(value, unicode.IsDigit) {
		return "", newError(CodeMissingDigit, "password must include at least one number")
	}
	if !strings.ContainsFunc(value, unicode.IsLower) {
		return "", newError(CodeMissingLower, "password must include at least one lowercase letter")
	}
	if !strings.ContainsFunc(value, unicode.IsUpper) {
		return "", newError(CodeMissingUpper, "password must include at least one uppercase letter")
	}
	special := v.SpecialChars
	if special == "" {
		special = DefaultSpecialChars
	}
	if !strings.ContainsAny(value, special) {
		return "", newError(CodeMissingSpecial, "password must include at least one special character")
	}
	return value, nil
}

// Boolean validates that a value is strictly a boolean. Truthy or falsy
// non-booleans such as the string "true" fail.
type Boolean struct{}

func (Boolean) Validate(value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, newError(CodeNotBoolean, "value must be a boolean (true or false)")
	}
	return b, nil
}
