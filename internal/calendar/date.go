// Package calendar implements civil calendar dates with whole-day arithmetic.
// A Date carries no time of day and no zone; all comparisons are by calendar
// day only.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("calendar: invalid date")

const isoLayout = "2006-01-02"

var (
	isoPattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Date is a calendar day. The zero value means "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

// New returns the date for y-m-d. Out-of-range components are normalized the
// way time.Date normalizes them (e.g. January 32 becomes February 1).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Parse accepts only the strict YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	d, ok := parseISO(strings.TrimSpace(s))
	if !ok {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseFlexible accepts YYYY-MM-DD or M/D/YYYY (one or two digit month and
// day). Any other input, including impossible dates, reports false.
func ParseFlexible(text string) (Date, bool) {
	s := strings.TrimSpace(text)
	if d, ok := parseISO(s); ok {
		return d, true
	}
	m := slashPattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return exact(year, month, day)
}

func parseISO(s string) (Date, bool) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return exact(year, month, day)
}

// exact rejects components that time.Date would silently normalize.
func exact(year, month, day int) (Date, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, false
	}
	d := New(year, time.Month(month), day)
	if d.year != year || int(d.month) != month || d.day != day {
		return Date{}, false
	}
	return d, true
}

// AddDays returns d shifted by n calendar days.
func AddDays(d Date, n int) Date {
	return FromTime(d.midnight().AddDate(0, 0, n))
}

// DaysBetween returns b - a in whole days.
func DaysBetween(a, b Date) int {
	return int((b.midnight().Unix() - a.midnight().Unix()) / 86400)
}

func (d Date) midnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Year() int          { return d.year }
func (d Date) Month() time.Month  { return d.month }
func (d Date) Day() int           { return d.day }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Equal(o Date) bool  { return d == o }
func (d Date) Before(o Date) bool { return DaysBetween(d, o) > 0 }
func (d Date) After(o Date) bool  { return DaysBetween(o, d) > 0 }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.midnight().Format(isoLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
