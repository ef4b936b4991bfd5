package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Numeric validates that a value parses as a floating-point number and
// optionally falls within the closed interval [Min, Max]. A nil bound is
// ignored.
type Numeric struct {
	Min *float64
	Max *float64
}

// Bound returns a pointer to v, convenient for building optional interval
// bounds inline.
func Bound(v float64) *float64 {
	return &v
}

// Validate returns the parsed value or the first violated rule.
func (v Numeric) Validate(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, newError(CodeNotANumber, "value must be a valid number")
	}
	if v.Min != nil && f < *v.Min {
		return 0, newError(CodeBelowMin, "value must be greater than or equal to %v", *v.Min)
	}
	if v.Max != nil && f > *v.Max {
		return 0, newError(CodeAboveMax, "value must be less than or equal to %v", *v.Max)
	}
	return f, nil
}

// DefaultMinAge is the lower bound applied when an Age validator is built
// with a zero MinAge.
const DefaultMinAge = 18

// Age checks that a value is a number at or above a minimum age. It composes
// a lower-bounded Numeric validator; there is deliberately no upper bound.
type Age struct {
	MinAge float64
}

// NewAge returns an Age validator with the default minimum of 18.
func NewAge() Age {
	return Age{MinAge: DefaultMinAge}
}

func (v Age) Validate(value string) (float64, error) {
	minAge := v.MinAge
	if minAge <= 0 {
		minAge = DefaultMinAge
	}
	f, err := (Numeric{Min: &minAge}).Validate(value)
	if err != nil {
		if CodeOf(err) == CodeBelowMin {
			return 0, newError(CodeBelowMin, "age must be at least %v", minAge)
		}
		return 0, err
	}
	return f, nil
}

// defaultDecimalPlaces caps the fractional part when no explicit precision is
// configured.
const defaultDecimalPlaces = 10

// maxDecimalPlaces is the largest configurable precision; regexp rejects
// repetition counts above 1000, so anything larger must fail as a validation
// error instead of reaching the compiler.
const maxDecimalPlaces = 1000

// Decimal validates that a value is an optionally negative integer or decimal
// number whose fractional part does not exceed MaxDecimalPlaces digits.
type Decimal struct {
	MaxDecimalPlaces int
}

func (v Decimal) Validate(value string) (string, error) {
	places := v.MaxDecimalPlaces
	if places <= 0 {
		places = defaultDecimalPlaces
	}
	if places > maxDecimalPlaces {
		return "", newError(CodeBadFormat, "max decimal places must be between 1 and %d", maxDecimalPlaces)
	}
	pattern := regexp.MustCompile(fmt.Sprintf(`^-?\d+(\.\d{1,%d})?$`, places))
	if !pattern.MatchString(value) {
		return "", newError(CodeNotADecimal, "value must be a valid decimal number with at most %d decimal places", places)
	}
	return value, nil
}
