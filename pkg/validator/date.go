package validator

import (
	"errors"
	"strings"
	"time"
)

// dateLayouts is the disambiguation contract for date parsing: ISO forms
// first, then day-first, then month-first, with 12-hour and textual-month
// forms after the numeric ones. An ambiguous string like "01/02/2024"
// resolves to the first layout that matches; reordering this list is a
// breaking change.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04:05 PM",
	"02/01/2006 3:04 PM",
	"02/01/2006 3:04:05 PM",
	"01/02/2006 3:04 PM",
	"01/02/2006 3:04:05 PM",
	"2 January 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// DetermineLayout returns the first supported layout that fully parses
// value. When no layout parses but at least one matched the shape with an
// out-of-range component (e.g. Feb 30, hour 25), that layout is returned so
// the caller can distinguish "impossible date" from "unknown format": an
// ambiguous string like "01/13/2024" still falls through to a later layout
// that accepts it.
func DetermineLayout(value string) (string, error) {
	shapeMatch := ""
	for _, layout := range dateLayouts {
		_, err := time.Parse(layout, value)
		if err == nil {
			return layout, nil
		}
		if shapeMatch == "" && isCalendarRangeError(err) {
			shapeMatch = layout
		}
	}
	if shapeMatch != "" {
		return shapeMatch, nil
	}
	return "", newError(CodeUnrecognizedFormat, "unable to determine the format of the date")
}

// isCalendarRangeError reports whether a parse failure means the shape
// matched but a component was out of calendar range, e.g. Feb 30 or hour 25.
func isCalendarRangeError(err error) bool {
	var parseErr *time.ParseError
	return errors.As(err, &parseErr) && strings.Contains(parseErr.Message, "out of range")
}

// Date validates a date string in one of the supported layouts. Check order:
// layout detection, calendar validity, not-future year.
type Date struct{}

func (Date) Validate(value string) (time.Time, error) {
	layout, err := DetermineLayout(value)
	if err != nil {
		return time.Time{}, err
	}
	t, perr := time.Parse(layout, value)
	if perr != nil {
		return time.Time{}, newError(CodeInvalidCalendarDate, "date or time does not exist in the calendar")
	}
	if t.Year() > time.Now().Year() {
		return time.Time{}, newError(CodeFutureYear, "year cannot be in the future")
	}
	return t, nil
}

// DateRange validates two date strings independently and then requires the
// start to be strictly earlier than the end.
type DateRange struct{}

func (DateRange) Validate(start, end string) (time.Time, time.Time, error) {
	var d Date
	startAt, err := d.Validate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endAt, err := d.Validate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !startAt.Before(endAt) {
		return time.Time{}, time.Time{}, newError(CodeRangeInverted, "start date must be earlier than end date")
	}
	return startAt, endAt, nil
}
