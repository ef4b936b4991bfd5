package validator

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrymomot/fieldcheck/pkg/sanitizer"
)

var (
	// phoneRegex matches a general international phone shape: optional
	// leading +, a country-code digit group, space/hyphen/dot separators,
	// and an optional parenthesized group.
	phoneRegex   = regexp.MustCompile(`^\+?[0-9]{1,3}[ .-]?(\([0-9]{1,4}\)[ .-]?)?[0-9]([ .-]?[0-9])*$`)
	emailRegex   = regexp.MustCompile(`^[a-z0-9_.+-]+@[a-z0-9-]+\.[a-z0-9-.]+$`)
	zipcodeRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// PhoneNumber validates a phone number against a general international
// pattern and bounds the digit count. Zero bounds fall back to the 8..14
// defaults.
type PhoneNumber struct {
	MinDigits int
	MaxDigits int
}

// Validate returns the escaped value on success. Check order: empty, escape,
// pattern, digit count.
func (v PhoneNumber) Validate(value string) (string, error) {
	if value == "" {
		return "", newError(CodeEmptyValue, "phone number cannot be empty")
	}
	escaped := sanitizer.EscapeHTML(value)
	if !phoneRegex.MatchString(escaped) {
		return "", newError(CodeBadFormat, "invalid phone number format")
	}

	minDigits, maxDigits := v.MinDigits, v.MaxDigits
	if minDigits <= 0 {
		minDigits = 8
	}
	if maxDigits <= 0 {
		maxDigits = 14
	}
	digits := sanitizer.StripNonDigits(escaped)
	if _, err := (MinMaxLength{MinLength: minDigits, MaxLength: maxDigits}).Validate(digits); err != nil {
		verr, _ := AsError(err)
		return "", newError(verr.Code, "phone number %s", strings.Replace(verr.Message, "characters", "digits", 1))
	}
	return escaped, nil
}

// Email validates an address shape and, last, that the domain has a
// resolvable MX record. The lookup goes through Resolver so tests can inject
// a fake; a nil Resolver uses the system resolver with the default timeout.
type Email struct {
	MinLength int
	MaxLength int
	Resolver  MXResolver
}

// Validate returns the escaped value on success. Check order: escape, length
// bounds, empty, local part, case, pattern, MX lookup.
func (v Email) Validate(ctx context.Context, value string) (string, error) {
	escaped := sanitizer.EscapeHTML(value)

	minLen, maxLen := v.MinLength, v.MaxLength
	if minLen <= 0 {
		minLen = 5
	}
	if maxLen <= 0 {
		maxLen = 254
	}
	if _, err := (MinMaxLength{MinLength: minLen, MaxLength: maxLen}).Validate(escaped); err != nil {
		verr, _ := AsError(err)
		return "", newError(verr.Code, "email %s", verr.Message)
	}
	if escaped == "" {
		return "", newError(CodeEmptyValue, "email cannot be empty")
	}

	local, domain, found := strings.Cut(escaped, "@")
	if len(local) < 3 {
		return "", newError(CodeUsernameTooShort, "email username must be at least 3 characters long")
	}
	if strings.ContainsFunc(escaped, unicode.IsUpper) {
		return "", newError(CodeUppercaseNotAllowed, "email must not contain uppercase letters")
	}
	if !found || !emailRegex.MatchString(escaped) {
		return "", newError(CodeBadFormat, "invalid email format")
	}

	resolver := v.Resolver
	if resolver == nil {
		resolver = NewNetMXResolver(DefaultLookupTimeout)
	}
	ok, err := resolver.LookupMX(ctx, domain)
	if err != nil {
		return "", newError(CodeLookupFailed, "unable to verify email domain %s", domain)
	}
	if !ok {
		return "", newError(CodeDomainUnresolvable, "email domain %s does not accept mail", domain)
	}
	return escaped, nil
}

// Zipcode validates a US postal code: five digits or ZIP+4.
type Zipcode struct {
	MinLength int
	MaxLength int
}

func (v Zipcode) Validate(value string) (string, error) {
	escaped := sanitizer.EscapeHTML(value)

	minLen, maxLen := v.MinLength, v.MaxLength
	if minLen <= 0 {
		minLen = 5
	}
	if maxLen <= 0 {
		maxLen = 10
	}
	if _, err := (MinMaxLength{MinLength: minLen, MaxLength: maxLen}).Validate(escaped); err != nil {
		verr, _ := AsError(err)
		return "", newError(verr.Code, "zipcode %s", verr.Message)
	}
	if !zipcodeRegex.MatchString(escaped) {
		return "", newError(CodeBadFormat, "zipcode must be 5 digits or ZIP+4 format")
	}
	return escaped, nil
}

// Pincode validates a 6-digit postal index number.
type Pincode struct{}

func (Pincode) Validate(value string) (string, error) {
	if !pincodeRegex.MatchString(value) {
		return "", newError(CodeBadFormat, "pincode must be exactly 6 numeric digits")
	}
	return value, nil
}
