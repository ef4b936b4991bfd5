package validator

import (
	"errors"
	"fmt"
)

// Category groups failure codes into the broad taxonomy surfaced at the HTTP
// boundary.
type Category string

const (
	CategoryFormat           Category = "format"
	CategoryRange            Category = "range"
	CategoryEmpty            Category = "empty"
	CategoryUnsupportedType  Category = "unsupported_type"
	CategoryExternalLookup   Category = "external_lookup"
	CategoryUnresolvedDomain Category = "unresolved_domain"
)

// Code identifies the first rule a value violated. Codes are stable and safe
// to branch on; messages are for humans only.
type Code string

const (
	CodeNotANumber          Code = "not_a_number"
	CodeBelowMin            Code = "below_min"
	CodeAboveMax            Code = "above_max"
	CodeNotADecimal         Code = "not_a_decimal"
	CodeTooShort            Code = "too_short"
	CodeTooLong             Code = "too_long"
	CodeEmptyValue          Code = "empty_value"
	CodeNotAlphanumeric     Code = "not_alphanumeric"
	CodeNotAlphabetic       Code = "not_alphabetic"
	CodeNotAllowed          Code = "not_allowed"
	CodeBadFormat           Code = "bad_format"
	CodeUsernameTooShort    Code = "username_too_short"
	CodeUppercaseNotAllowed Code = "uppercase_not_allowed"
	CodeLookupFailed        Code = "lookup_failed"
	CodeDomainUnresolvable  Code = "domain_unresolvable"
	CodeUnrecognizedFormat  Code = "unrecognized_format"
	CodeInvalidCalendarDate Code = "invalid_calendar_date"
	CodeFutureYear          Code = "future_year"
	CodeRangeInverted       Code = "range_inverted"
	CodeNotBoolean          Code = "not_boolean"
	CodeMissingDigit        Code = "missing_digit"
	CodeMissingLower        Code = "missing_lower"
	CodeMissingUpper        Code = "missing_upper"
	CodeMissingSpecial      Code = "missing_special"
	CodeBadFileName         Code = "bad_file_name"
	CodeUnsupportedType     Code = "unsupported_type"
	CodeFileTooLarge        Code = "file_too_large"
	CodeUnreadableFile      Code = "unreadable_file"
	CodeDecodeFailed        Code = "decode_failed"
	CodeImageTooSmall       Code = "image_too_small"
	CodeImageTooLarge       Code = "image_too_large"
	CodeUnsupportedInput    Code = "unsupported_input"
)

// Category maps a failure code to its taxonomy bucket.
func (c Code) Category() Category {
	switch c {
	case CodeBelowMin, CodeAboveMax, CodeTooShort, CodeTooLong,
		CodeUsernameTooShort, CodeFileTooLarge, CodeImageTooSmall,
		CodeImageTooLarge, CodeRangeInverted, CodeFutureYear:
		return CategoryRange
	case CodeEmptyValue:
		return CategoryEmpty
	case CodeNotBoolean, CodeUnsupportedInput:
		return CategoryUnsupportedType
	case CodeLookupFailed, CodeUnreadableFile, CodeDecodeFailed:
		return CategoryExternalLookup
	case CodeDomainUnresolvable:
		return CategoryUnresolvedDomain
	default:
		return CategoryFormat
	}
}

// Error is a single failed rule. Validators return the first violated rule
// and never aggregate multiple failures for one field.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps err into a validation *Error if it is one.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// CodeOf returns the failure code carried by err, or the empty Code when err
// is not a validation error.
func CodeOf(err error) Code {
	if verr, ok := AsError(err); ok {
		return verr.Code
	}
	return ""
}
