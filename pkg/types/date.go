package types

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the text form of a Date.
const DateLayout = "2006-01-02"

// ErrDateFormat is matched by every DateFormatError.
var ErrDateFormat = errors.New("invalid date format")

// DateFormatError reports a date string that is not YYYY-MM-DD.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Value)
}

// Is reports whether target is ErrDateFormat.
func (e *DateFormatError) Is(target error) bool {
	return target == ErrDateFormat
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string. Malformed input, including
// impossible dates such as 2024-02-30, yields a *DateFormatError.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &DateFormatError{Value: s, Err: err}
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests
// and static tables.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthsBetween returns the calendar-month distance from start to end:
// (end.Year-start.Year)*12 + (end.Month-start.Month). The day of month is
// ignored, and the result is negative when end's month precedes start's.
func MonthsBetween(start, end Date) int {
	return (end.Year-start.Year)*12 + int(end.Month) - int(start.Month)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Set implements pflag.Value so a Date can be bound to a command flag.
func (d *Date) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (d *Date) Type() string {
	return "date"
}
