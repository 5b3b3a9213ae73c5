package dates

import (
	"testing"
	"time"
)

func TestRangeFor(t *testing.T) {
	// Sunday, June 15 2025.
	ref := d(2025, time.June, 15)

	tests := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{PeriodDay, d(2025, time.June, 15), d(2025, time.June, 15)},
		{PeriodWeek, d(2025, time.June, 15), d(2025, time.June, 21)},
		{PeriodMonth, d(2025, time.June, 1), d(2025, time.June, 30)},
		{PeriodQuarter, d(2025, time.April, 1), d(2025, time.June, 30)},
		{PeriodYear, d(2025, time.January, 1), d(2025, time.December, 31)},
		{Period("bogus"), d(2025, time.June, 15), d(2025, time.June, 15)},
	}

	for _, tt := range tests {
		r := RangeFor(tt.period, ref)
		if !r.Start.Equal(tt.start) || !r.End.Equal(tt.end) {
			t.Errorf("RangeFor(%s) = [%v, %v], want [%v, %v]",
				tt.period, r.Start, r.End, tt.start, tt.end)
		}
	}
}

func TestRangeContainsAndDays(t *testing.T) {
	r := RangeFor(PeriodMonth, d(2025, time.June, 15))

	if !r.Contains(d(2025, time.June, 1)) || !r.Contains(d(2025, time.June, 30)) {
		t.Error("range endpoints must be contained")
	}
	if r.Contains(d(2025, time.May, 31)) || r.Contains(d(2025, time.July, 1)) {
		t.Error("dates outside the month must not be contained")
	}
	if got := r.Days(); got != 30 {
		t.Errorf("Days = %d, want 30", got)
	}
}

func TestKey(t *testing.T) {
	ref := d(2025, time.June, 15)

	tests := []struct {
		period Period
		want   string
	}{
		{PeriodDay, "2025-06-15"},
		{PeriodWeek, "2025-06-15"},
		{PeriodMonth, "2025-06"},
		{PeriodQuarter, "2025-Q2"},
		{PeriodYear, "2025"},
	}

	for _, tt := range tests {
		if got := Key(tt.period, ref); got != tt.want {
			t.Errorf("Key(%s) = %q, want %q", tt.period, got, tt.want)
		}
	}
}

func TestKey_WeekUsesWeekStart(t *testing.T) {
	// Wednesday keys to the preceding Sunday.
	if got := Key(PeriodWeek, d(2025, time.June, 18)); got != "2025-06-15" {
		t.Errorf("got %q", got)
	}
}

func TestInfoLabels(t *testing.T) {
	now := d(2025, time.June, 15)

	tests := []struct {
		name   string
		period Period
		ref    time.Time
		want   string
	}{
		{"today", PeriodDay, now, "Today"},
		{"yesterday", PeriodDay, d(2025, time.June, 14), "Yesterday"},
		{"tomorrow", PeriodDay, d(2025, time.June, 16), "Tomorrow"},
		{"other day", PeriodDay, d(2025, time.March, 3), "Mar 3, 2025"},
		{"this week", PeriodWeek, d(2025, time.June, 18), "This Week"},
		{"other week", PeriodWeek, d(2025, time.May, 7), "Week of May 4, 2025"},
		{"this month", PeriodMonth, d(2025, time.June, 1), "This Month"},
		{"other month", PeriodMonth, d(2025, time.February, 10), "February 2025"},
		{"quarter", PeriodQuarter, now, "Q2 2025"},
		{"this year", PeriodYear, d(2025, time.December, 31), "This Year"},
		{"other year", PeriodYear, d(2024, time.June, 1), "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info(tt.period, tt.ref, now)
			if info.Label != tt.want {
				t.Errorf("label = %q, want %q", info.Label, tt.want)
			}
			if info.Days < 1 {
				t.Errorf("Days = %d", info.Days)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	// Sunday, June 15 2025.
	now := time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC)
	p := Presets(now)

	today := d(2025, time.June, 15)

	checks := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"today", today, today},
		{"yesterday", d(2025, time.June, 14), d(2025, time.June, 14)},
		{"thisWeek", d(2025, time.June, 15), d(2025, time.June, 21)},
		{"lastWeek", d(2025, time.June, 8), d(2025, time.June, 14)},
		{"thisMonth", d(2025, time.June, 1), d(2025, time.June, 30)},
		{"lastMonth", d(2025, time.May, 1), d(2025, time.May, 31)},
		{"thisQuarter", d(2025, time.April, 1), d(2025, time.June, 30)},
		{"thisYear", d(2025, time.January, 1), d(2025, time.December, 31)},
		{"lastYear", d(2024, time.January, 1), d(2024, time.December, 31)},
		{"last30Days", d(2025, time.May, 16), today},
	}

	for _, c := range checks {
		r, ok := p[c.name]
		if !ok {
			t.Errorf("missing preset %q", c.name)
			continue
		}
		if !r.Start.Equal(c.start) || !r.End.Equal(c.end) {
			t.Errorf("%s = [%v, %v], want [%v, %v]", c.name, r.Start, r.End, c.start, c.end)
		}
	}

	if _, ok := p["last90Days"]; !ok {
		t.Error("missing preset last90Days")
	}
	if _, ok := p["last365Days"]; !ok {
		t.Error("missing preset last365Days")
	}
}
