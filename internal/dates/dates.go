// Package dates provides pure calendar-date utilities for invoice math.
//
// All functions are day-granular: times are normalized to midnight UTC and
// anything that depends on the clock takes an explicit reference time, so
// every result is reproducible from its inputs.
package dates

import (
	"fmt"
	"regexp"
	"time"
)

// Layout is the canonical YYYY-MM-DD storage format for dates.
const Layout = "2006-01-02"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Parse parses a strict YYYY-MM-DD date string.
func Parse(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Day truncates a time to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after t (negative n subtracts).
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// AddMonths returns the date n months after t.
func AddMonths(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, n, 0)
}

// AddYears returns the date n years after t.
func AddYears(t time.Time, n int) time.Time {
	return Day(t).AddDate(n, 0, 0)
}

// DaysBetween returns the absolute number of calendar days between two dates.
func DaysBetween(a, b time.Time) int {
	d := int(Day(b).Sub(Day(a)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// BusinessDaysBetween counts weekdays from a through b inclusive.
// Returns 0 when b is before a.
func BusinessDaysBetween(a, b time.Time) int {
	start, end := Day(a), Day(b)
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// InRange reports whether t falls within [start, end] by calendar date.
func InRange(t, start, end time.Time) bool {
	d := Day(t)
	return !d.Before(Day(start)) && !d.After(Day(end))
}

// Before reports whether a's calendar date is strictly before b's.
func Before(a, b time.Time) bool {
	return Day(a).Before(Day(b))
}

// After reports whether a's calendar date is strictly after b's.
func After(a, b time.Time) bool {
	return Day(a).After(Day(b))
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// IsToday reports whether t falls on the same date as now.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}

// IsYesterday reports whether t falls on the date before now.
func IsYesterday(t, now time.Time) bool {
	return SameDay(t, AddDays(now, -1))
}

// IsTomorrow reports whether t falls on the date after now.
func IsTomorrow(t, now time.Time) bool {
	return SameDay(t, AddDays(now, 1))
}

// IsPastDue reports whether the due date has passed: strictly before
// today's date, so an invoice due today is not yet overdue.
func IsPastDue(due, now time.Time) bool {
	return Day(due).Before(Day(now))
}

// IsThisWeek reports whether t falls in the same Sunday-to-Saturday week as now.
func IsThisWeek(t, now time.Time) bool {
	return InRange(t, StartOfWeek(now), EndOfWeek(now))
}

// IsThisMonth reports whether t falls in the same month as now.
func IsThisMonth(t, now time.Time) bool {
	return t.UTC().Year() == now.UTC().Year() && t.UTC().Month() == now.UTC().Month()
}

// IsThisYear reports whether t falls in the same year as now.
func IsThisYear(t, now time.Time) bool {
	return t.UTC().Year() == now.UTC().Year()
}

// Quarter returns the calendar quarter (1-4) for a date.
func Quarter(t time.Time) int {
	return (int(t.UTC().Month())-1)/3 + 1
}

// StartOfWeek returns the Sunday beginning the week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek returns the Saturday ending the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfQuarter returns the first day of t's quarter.
func StartOfQuarter(t time.Time) time.Time {
	d := t.UTC()
	month := time.Month((Quarter(t)-1)*3 + 1)
	return time.Date(d.Year(), month, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfQuarter returns the last day of t's quarter.
func EndOfQuarter(t time.Time) time.Time {
	return StartOfQuarter(t).AddDate(0, 3, -1)
}

// StartOfYear returns January 1 of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns December 31 of t's year.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// IsLeapYear reports whether a year has 366 days.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month of a year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
