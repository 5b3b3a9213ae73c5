package dates

import (
	"fmt"
	"strings"
	"time"
)

// Style selects a human-facing date rendering.
type Style string

const (
	StyleShort   Style = "short"   // 01/02/2006
	StyleLong    Style = "long"    // Monday, January 2, 2006
	StyleISO     Style = "iso"     // 2006-01-02
	StyleDisplay Style = "display" // Jan 2, 2006
	StyleCompact Style = "compact" // Jan 2
	StyleFull    Style = "full"    // Monday, January 2, 2006 at 3:04 PM
)

// Format renders a time in the given style. Unknown styles fall back to ISO.
func Format(t time.Time, style Style) string {
	switch style {
	case StyleShort:
		return t.Format("01/02/2006")
	case StyleLong:
		return t.Format("Monday, January 2, 2006")
	case StyleDisplay:
		return t.Format("Jan 2, 2006")
	case StyleCompact:
		return t.Format("Jan 2")
	case StyleFull:
		return t.Format("Monday, January 2, 2006 at 3:04 PM")
	default:
		return t.Format(Layout)
	}
}

// Reformat parses a YYYY-MM-DD string and renders it in the given style.
// On a parse failure the input is returned unchanged along with the error,
// so display code can show something while callers still observe the failure.
func Reformat(s string, style Style) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return s, err
	}
	return Format(t, style), nil
}

// Weekday returns the weekday name for a date.
func Weekday(t time.Time, short bool) string {
	if short {
		return t.Format("Mon")
	}
	return t.Format("Monday")
}

// MonthName returns the month name for a date.
func MonthName(t time.Time, short bool) string {
	if short {
		return t.Format("Jan")
	}
	return t.Format("January")
}

// FormatDuration renders a second count as "1h 2m 3s", dropping zero parts.
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}
