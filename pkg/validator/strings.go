package validator

import (
	"regexp"
	"slices"

	"github.com/dmitrymomot/fieldcheck/pkg/sanitizer"
)

var (
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphabeticRegex   = regexp.MustCompile(`^[a-zA-Z]+$`)
	nameRegex         = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	addressRegex      = regexp.MustCompile(`^[a-zA-Z0-9\s,.-]+$`)
)

// MinMaxLength validates string length against optional bounds.
//
// A bound of zero disables that bound entirely; "must be exactly empty"
// cannot be expressed. This mirrors the legacy falsy-bound behavior the
// other validators were built against.
type MinMaxLength struct {
	MinLength int
	MaxLength int
}

func (v MinMaxLength) Validate(value string) (string, error) {
	if v.MinLength > 0 && len(value) < v.MinLength {
		return "", newError(CodeTooShort, "must be at least %d characters long", v.MinLength)
	}
	if v.MaxLength > 0 && len(value) > v.MaxLength {
		return "", newError(CodeTooLong, "must be at most %d characters long", v.MaxLength)
	}
	return value, nil
}

// Alphanumeric validates that a value contains only ASCII letters and digits.
type Alphanumeric struct{}

func (Alphanumeric) Validate(value string) (string, error) {
	if value == "" {
		return "", newError(CodeEmptyValue, "value cannot be empty")
	}
	if !alphanumericRegex.MatchString(value) {
		return "", newError(CodeNotAlphanumeric, "value must contain only letters and numbers")
	}
	return value, nil
}

// Alphabetic validates that a value contains only ASCII letters.
type Alphabetic struct{}

func (Alphabetic) Validate(value string) (string, error) {
	if value == "" {
		return "", newError(CodeEmptyValue, "value cannot be empty")
	}
	if !alphabeticRegex.MatchString(value) {
		return "", newError(CodeNotAlphabetic, "value must contain only letters")
	}
	return value, nil
}

// Name validates person-name fields: 3-50 characters, letters plus spaces,
// hyphens, and apostrophes.
type Name struct {
	// Field names the value in error messages, e.g. "firstname".
	Field string
}

func (v Name) Validate(value string) (string, error) {
	field := v.Field
	if field == "" {
		field = "name"
	}
	if _, err := (MinMaxLength{MinLength: 3, MaxLength: 50}).Validate(value); err != nil {
		verr, _ := AsError(err)
		return "", newError(verr.Code, "%s %s", field, verr.Message)
	}
	if !nameRegex.MatchString(value) {
		return "", newError(CodeBadFormat, "%s may contain only letters, spaces, hyphens, and apostrophes", field)
	}
	return value, nil
}

// Address validates a free-form postal address line: 5-100 characters,
// letters, digits, spaces, commas, periods, and hyphens.
type Address struct{}

func (Address) Validate(value string) (string, error) {
	if _, err := (MinMaxLength{MinLength: 5, MaxLength: 100}).Validate(value); err != nil {
		verr, _ := AsError(err)
		return "", newError(verr.Code, "address %s", verr.Message)
	}
	if !addressRegex.MatchString(value) {
		return "", newError(CodeBadFormat, "address may contain only letters, numbers, spaces, commas, periods, and hyphens")
	}
	return value, nil
}

// defaultGenders is the allowed set applied when a Gender validator carries
// no explicit configuration.
var defaultGenders = []string{"male", "female", "other"}

// Gender lower-cases the input and checks membership in the allowed set.
// Allowed values must themselves be lower case.
type Gender struct {
	Allowed []string
}

// Validate returns the normalized (lower-cased) value on success.
func (v Gender) Validate(value string) (string, error) {
	normalized := sanitizer.TrimLower(value)
	if len(normalized) < 4 {
		return "", newError(CodeTooShort, "gender must be at least 4 characters long")
	}
	allowed := v.Allowed
	if len(allowed) == 0 {
		allowed = defaultGenders
	}
	if !slices.Contains(allowed, normalized) {
		return "", newError(CodeNotAllowed, "gender must be one of the allowed values")
	}
	return normalized, nil
}
