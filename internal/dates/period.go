package dates

import (
	"fmt"
	"time"
)

// Period identifies a calendar bucket size for range queries and summaries.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Range is an inclusive span of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range by calendar date.
func (r Range) Contains(t time.Time) bool {
	return InRange(t, r.Start, r.End)
}

// Days returns the number of days the range covers, inclusive.
func (r Range) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// PeriodInfo describes a period range together with a display label.
type PeriodInfo struct {
	Label string
	Start time.Time
	End   time.Time
	Days  int
}

// RangeFor returns the calendar range of the period containing ref.
func RangeFor(p Period, ref time.Time) Range {
	switch p {
	case PeriodDay:
		d := Day(ref)
		return Range{Start: d, End: d}
	case PeriodWeek:
		return Range{Start: StartOfWeek(ref), End: EndOfWeek(ref)}
	case PeriodMonth:
		return Range{Start: StartOfMonth(ref), End: EndOfMonth(ref)}
	case PeriodQuarter:
		return Range{Start: StartOfQuarter(ref), End: EndOfQuarter(ref)}
	case PeriodYear:
		return Range{Start: StartOfYear(ref), End: EndOfYear(ref)}
	default:
		d := Day(ref)
		return Range{Start: d, End: d}
	}
}

// Key returns the bucket key for grouping a date by period: the week's start
// date, "2006-01" for months, "2006-Q1" for quarters, "2006" for years.
func Key(p Period, t time.Time) string {
	switch p {
	case PeriodWeek:
		return StartOfWeek(t).Format(Layout)
	case PeriodMonth:
		return t.UTC().Format("2006-01")
	case PeriodQuarter:
		return fmt.Sprintf("%d-Q%d", t.UTC().Year(), Quarter(t))
	case PeriodYear:
		return t.UTC().Format("2006")
	default:
		return Day(t).Format(Layout)
	}
}

// Info returns the range for a period with a label relative to now
// ("Today", "This Week", "Q3 2026", ...).
func Info(p Period, ref, now time.Time) PeriodInfo {
	r := RangeFor(p, ref)

	var label string
	switch p {
	case PeriodDay:
		switch {
		case IsToday(ref, now):
			label = "Today"
		case IsYesterday(ref, now):
			label = "Yesterday"
		case IsTomorrow(ref, now):
			label = "Tomorrow"
		default:
			label = Format(ref, StyleDisplay)
		}
	case PeriodWeek:
		if IsThisWeek(ref, now) {
			label = "This Week"
		} else {
			label = "Week of " + Format(r.Start, StyleDisplay)
		}
	case PeriodMonth:
		if IsThisMonth(ref, now) {
			label = "This Month"
		} else {
			label = fmt.Sprintf("%s %d", MonthName(ref, false), ref.UTC().Year())
		}
	case PeriodQuarter:
		label = fmt.Sprintf("Q%d %d", Quarter(ref), ref.UTC().Year())
	case PeriodYear:
		if IsThisYear(ref, now) {
			label = "This Year"
		} else {
			label = fmt.Sprintf("%d", ref.UTC().Year())
		}
	default:
		label = "Unknown Period"
	}

	return PeriodInfo{Label: label, Start: r.Start, End: r.End, Days: r.Days()}
}

// Presets returns the standard filter ranges offered for date filtering,
// all relative to now.
func Presets(now time.Time) map[string]Range {
	today := Day(now)
	yesterday := AddDays(today, -1)
	lastWeekRef := AddDays(today, -7)
	lastMonthRef := AddMonths(today, -1)
	lastYearRef := AddYears(today, -1)

	return map[string]Range{
		"today":       {Start: today, End: today},
		"yesterday":   {Start: yesterday, End: yesterday},
		"thisWeek":    RangeFor(PeriodWeek, today),
		"lastWeek":    {Start: StartOfWeek(lastWeekRef), End: EndOfWeek(lastWeekRef)},
		"thisMonth":   RangeFor(PeriodMonth, today),
		"lastMonth":   {Start: StartOfMonth(lastMonthRef), End: EndOfMonth(lastMonthRef)},
		"thisQuarter": RangeFor(PeriodQuarter, today),
		"thisYear":    RangeFor(PeriodYear, today),
		"lastYear":    {Start: StartOfYear(lastYearRef), End: EndOfYear(lastYearRef)},
		"last30Days":  {Start: AddDays(today, -30), End: today},
		"last90Days":  {Start: AddDays(today, -90), End: today},
		"last365Days": {Start: AddDays(today, -365), End: today},
	}
}
