// Package invoice is the financial computation engine: invoice number
// generation, totals, status derivation, validation, statistics, and query
// operations over invoice collections.
//
// Every function here is pure. Collections are accepted as snapshots and
// never mutated; anything clock-dependent takes an explicit reference time.
// The host application owns the records and decides when to write derived
// values back.
package invoice

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/andy/invoicekit/internal/domain"
)

// Pattern selects the invoice numbering scheme.
type Pattern string

const (
	PatternSequential Pattern = "sequential" // INV-001
	PatternYearly     Pattern = "yearly"     // INV-26-001
	PatternMonthly    Pattern = "monthly"    // INV-202609-001
	PatternCustom     Pattern = "custom"     // INV-<epoch millis>
)

// NumberConfig controls invoice number generation.
type NumberConfig struct {
	Pattern   Pattern
	Prefix    string
	Suffix    string
	Digits    int
	Separator string
}

// DefaultNumberConfig returns the standard yearly numbering scheme.
func DefaultNumberConfig() NumberConfig {
	return NumberConfig{
		Pattern:   PatternYearly,
		Prefix:    "INV",
		Digits:    3,
		Separator: "-",
	}
}

// withDefaults fills zero-valued fields from the default configuration.
func (c NumberConfig) withDefaults() NumberConfig {
	def := DefaultNumberConfig()
	if c.Pattern == "" {
		c.Pattern = def.Pattern
	}
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
	if c.Digits <= 0 {
		c.Digits = def.Digits
	}
	if c.Separator == "" {
		c.Separator = def.Separator
	}
	return c
}

// GenerateNumber produces the next invoice number for the configured
// pattern. Existing numbers that exactly match the pattern's namespace are
// scanned for the highest sequence; numbers from other patterns or manual
// entry are ignored, so uniqueness is only guaranteed among numbers this
// generator produced.
func GenerateNumber(existing []domain.Invoice, cfg NumberConfig, now time.Time) string {
	cfg = cfg.withDefaults()

	var pattern string
	switch cfg.Pattern {
	case PatternSequential:
		pattern = cfg.Prefix
	case PatternYearly:
		pattern = fmt.Sprintf("%s%s%02d", cfg.Prefix, cfg.Separator, now.Year()%100)
	case PatternMonthly:
		pattern = fmt.Sprintf("%s%s%04d%02d", cfg.Prefix, cfg.Separator, now.Year(), int(now.Month()))
	case PatternCustom:
		return fmt.Sprintf("%s%s%d%s", cfg.Prefix, cfg.Separator, now.UnixMilli(), cfg.Suffix)
	default:
		pattern = cfg.Prefix
	}

	re := regexp.MustCompile(`^` + regexp.QuoteMeta(pattern+cfg.Separator) + `(\d+)$`)

	max := 0
	for _, inv := range existing {
		m := re.FindStringSubmatch(inv.InvoiceNumber)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%s%0*d%s", pattern, cfg.Separator, cfg.Digits, max+1, cfg.Suffix)
}

// ValidateNumberFormat checks that a manually entered invoice number at
// least begins with the configured prefix and separator.
func ValidateNumberFormat(number string, cfg NumberConfig) error {
	cfg = cfg.withDefaults()

	if number == "" {
		return fmt.Errorf("invoice number is required")
	}

	lead := cfg.Prefix + cfg.Separator
	if len(number) <= len(lead) || number[:len(lead)] != lead {
		return fmt.Errorf("invoice number must start with %q", lead)
	}
	return nil
}
