package stocknote

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for dates, ISO-8601 day precision.
const DateFormat = "2006-01-02"

// YearMonthFormat is the canonical form of a year-month key.
const YearMonthFormat = "2006-01"

// yearMonthWireFormat is the form used on the bulk-import wire (e.g. "2024/01").
const yearMonthWireFormat = "2006/01"

// Date represents a calendar date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// time returns the canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// String formats the date in the DateFormat wire form.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// YearMonth returns the year-month key of the date.
func (d Date) YearMonth() YearMonth { return YearMonth{y: d.y, m: d.m} }

// EndOfMonth returns the last day of the date's month.
func (d Date) EndOfMonth() Date { return NewDate(d.y, d.m+1, 0) }

// ParseDate parses a Date from its wire form.
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(DateFormat, strings.TrimSpace(str))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error. For tests and literals.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := time.Parse(DateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*d = NewDate(on.Date())
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// YearMonth identifies a calendar month, the key used to index historical
// closing prices.
type YearMonth struct {
	y int
	m time.Month
}

// NewYearMonth returns a normalized YearMonth.
func NewYearMonth(year int, month time.Month) YearMonth {
	d := NewDate(year, month, 1)
	return YearMonth{y: d.y, m: d.m}
}

func (ym YearMonth) Year() int         { return ym.y }
func (ym YearMonth) Month() time.Month { return ym.m }

// String formats the year-month in its canonical "YYYY-MM" form.
func (ym YearMonth) String() string {
	return time.Date(ym.y, ym.m, 1, 0, 0, 0, 0, time.UTC).Format(YearMonthFormat)
}

// Before reports whether ym is strictly before x.
func (ym YearMonth) Before(x YearMonth) bool {
	return ym.y < x.y || (ym.y == x.y && ym.m < x.m)
}

// After reports whether ym is strictly after x.
func (ym YearMonth) After(x YearMonth) bool { return x.Before(ym) }

// Next returns the following month.
func (ym YearMonth) Next() YearMonth { return NewYearMonth(ym.y, ym.m+1) }

// ParseYearMonth parses the import wire form "YYYY/MM".
func ParseYearMonth(str string) (YearMonth, error) {
	on, err := time.Parse(yearMonthWireFormat, strings.TrimSpace(str))
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q, want format %q: %w", str, yearMonthWireFormat, err)
	}
	return NewYearMonth(on.Year(), on.Month()), nil
}

// ParseYearMonthKey parses the canonical "YYYY-MM" form used in data files.
func ParseYearMonthKey(str string) (YearMonth, error) {
	on, err := time.Parse(YearMonthFormat, strings.TrimSpace(str))
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month key %q, want format %q: %w", str, YearMonthFormat, err)
	}
	return NewYearMonth(on.Year(), on.Month()), nil
}

// MonthRange represents an inclusive range of months.
type MonthRange struct{ From, To YearMonth }

// NewMonthRange creates a month range. It returns an error when from is after
// to, because on the import wire a reversed range is a user mistake, not
// something to silently fix.
func NewMonthRange(from, to YearMonth) (MonthRange, error) {
	if from.After(to) {
		return MonthRange{}, fmt.Errorf("month range start %s is after end %s", from, to)
	}
	return MonthRange{From: from, To: to}, nil
}

// Count returns the number of months in the range, boundaries included.
func (r MonthRange) Count() int {
	return (r.To.y-r.From.y)*12 + int(r.To.m) - int(r.From.m) + 1
}

// Months returns the inclusive sequence of year-month keys in the range.
func (r MonthRange) Months() []YearMonth {
	months := make([]YearMonth, 0, r.Count())
	for ym := r.From; !ym.After(r.To); ym = ym.Next() {
		months = append(months, ym)
	}
	return months
}
