package task

import (
	"fmt"
	"time"
)

// DateLayout is the storage layout for due dates. It is fixed width and zero
// padded, so comparing two Dates as strings compares them chronologically.
const DateLayout = "2006-01-02"

// DisplayLayout is the human-readable layout used by renderers.
const DisplayLayout = "Jan 2, 2006"

// Date is a calendar day with no time component.
type Date string

// ParseDate validates value as a YYYY-MM-DD day.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, value)
	}
	return DateOf(parsed), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the local calendar day at now.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

// DatePtr returns a pointer to d.
func DatePtr(d Date) *Date {
	return &d
}

// Time returns midnight UTC of the day. Invalid dates yield the zero time.
func (d Date) Time() time.Time {
	parsed, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// AddDays returns the day n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths returns the same day n months later, normalized the way
// time.AddDate normalizes (Jan 31 + 1 month is Mar 2 or 3).
func (d Date) AddMonths(n int) Date {
	return DateOf(d.Time().AddDate(0, n, 0))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}

// IsValid reports whether d is a well-formed day.
func (d Date) IsValid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

// Format renders d for display, e.g. "Jan 2, 2006".
func (d Date) Format() string {
	parsed, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return string(d)
	}
	return parsed.Format(DisplayLayout)
}

func (d Date) String() string {
	return string(d)
}

// UnmarshalText rejects anything that is not a YYYY-MM-DD day.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d), nil
}
