// Package sanitizer provides the small set of normalization helpers the
// validators apply before pattern checks. Sanitization here is defensive, not
// semantic: escaping makes a value safe to echo back in a response, it does
// not make it valid.
package sanitizer

import (
	"html"
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// EscapeHTML escapes HTML special characters so a rejected value can be
// returned to the client verbatim without becoming an XSS vector.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// StripNonDigits removes every character that is not an ASCII digit.
func StripNonDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// TrimLower trims surrounding whitespace and lower-cases the result.
var TrimLower = Compose(strings.TrimSpace, strings.ToLower)

// Apply runs value through each transform in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose builds a reusable transformation chain from the given transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}
