package dates

import (
	"fmt"
	"time"
)

// RelativeOptions controls the rendering of RelativeTime.
type RelativeOptions struct {
	IncludeSeconds bool
	ShortFormat    bool
}

type relInterval struct {
	long    string
	short   string
	seconds int64
}

var relIntervals = []relInterval{
	{"year", "y", 31536000},
	{"month", "mo", 2592000},
	{"week", "w", 604800},
	{"day", "d", 86400},
	{"hour", "h", 3600},
	{"minute", "m", 60},
}

// RelativeTime renders the distance between t and now as a phrase like
// "2 days ago" or "in 3 hours" ("2d" / "in 3h" with ShortFormat).
func RelativeTime(t, now time.Time, opts RelativeOptions) string {
	diff := int64(now.Sub(t).Seconds())

	intervals := relIntervals
	if opts.IncludeSeconds {
		intervals = append(intervals[:len(intervals):len(intervals)], relInterval{"second", "s", 1})
	}

	abs := diff
	if abs < 0 {
		abs = -abs
	}

	for _, iv := range intervals {
		count := abs / iv.seconds
		if count == 0 {
			continue
		}

		unit := iv.long
		if count != 1 {
			unit += "s"
		}
		if opts.ShortFormat {
			unit = iv.short
		}

		prefix, suffix, space := "", " ago", " "
		if diff < 0 {
			prefix, suffix = "in ", ""
		}
		if opts.ShortFormat {
			suffix, space = "", ""
		}
		return fmt.Sprintf("%s%d%s%s%s", prefix, count, space, unit, suffix)
	}

	if opts.ShortFormat {
		return "now"
	}
	return "Just now"
}
