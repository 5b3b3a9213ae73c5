package money

import (
	"strings"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.0},
		{1.015, 1.01},
		{2.675, 2.67}, // 2.675 is stored just under 2.675
		{0.125, 0.13},
		{99.999, 100},
		{-1.125, -1.13}, // halves round away from zero
		{1234.5678, 1234.57},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	got := FormatUSD(1234.5)
	if !strings.Contains(got, "$") {
		t.Errorf("missing currency symbol: %q", got)
	}
	if !strings.Contains(got, "1,234.50") {
		t.Errorf("got %q, want grouped two-decimal rendering", got)
	}
}

func TestFormat_Euro(t *testing.T) {
	got := Format(99.9, "EUR", "en-US")
	if !strings.Contains(got, "99.90") {
		t.Errorf("got %q", got)
	}
	if strings.Contains(got, "$") {
		t.Errorf("euro amount rendered with dollar symbol: %q", got)
	}
}

func TestFormat_UnknownCurrencyFallsBack(t *testing.T) {
	got := Format(12.3, "ZZZ", "en-US")
	if got != "$12.30" {
		t.Errorf("got %q, want plain dollar fallback", got)
	}
}

func TestFormat_BadLocaleFallsBack(t *testing.T) {
	got := Format(1000, "USD", "not a locale")
	if !strings.Contains(got, "1,000.00") {
		t.Errorf("got %q, want en-US grouping", got)
	}
}
