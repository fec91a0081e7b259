// Package dates holds calendar helpers that operate in the business
// timezone (America/Sao_Paulo by default).
package dates

import (
	"errors"
	"strings"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a date string matches no accepted layout.
var ErrInvalidDate = errors.New("dates: invalid date")

// Clock resolves "now" and calendar boundaries in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock loads the named location. An unknown name falls back to UTC-3,
// the fixed offset of America/Sao_Paulo since 2019.
func NewClock(name string) *Clock {
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	return &Clock{loc: loc, now: time.Now}
}

// WithNow returns a copy of c whose current time comes from now.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

// Location returns the clock's timezone.
func (c *Clock) Location() *time.Location { return c.loc }

// Now returns the current instant in the clock's timezone.
func (c *Clock) Now() time.Time { return c.now().In(c.loc) }

// Today returns midnight of the current day.
func (c *Clock) Today() time.Time { return StartOfDay(c.Now()) }

// Parse reads a calendar date ("2006-01-02") or an RFC 3339 timestamp and
// returns midnight of that day in the clock's timezone.
func (c *Clock) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(Layout, s, c.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t.In(c.loc)), nil
	}
	return time.Time{}, ErrInvalidDate
}

// Range is a half-open interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// Named ranges accepted by list filters.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// NamedRange resolves "today", "week" (Sunday-start) or "month" relative to
// the current day. ok is false for any other name.
func (c *Clock) NamedRange(name string) (Range, bool) {
	today := c.Today()
	switch name {
	case RangeToday:
		return Range{From: today, To: today.AddDate(0, 0, 1)}, true
	case RangeWeek:
		start := StartOfWeek(today)
		return Range{From: start, To: start.AddDate(0, 0, 7)}, true
	case RangeMonth:
		start := StartOfMonth(today)
		return Range{From: start, To: start.AddDate(0, 1, 0)}, true
	}
	return Range{}, false
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday that begins t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
