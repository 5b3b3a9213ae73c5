package invoice

import (
	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/money"
)

// DefaultTaxRate is applied when the caller has no configured rate.
const DefaultTaxRate = 0.10

// Totals holds the derived financial summary of an invoice. Discount is
// zero when no discount applies.
type Totals struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// HasDiscount reports whether a discount was applied.
func (t Totals) HasDiscount() bool {
	return t.Discount > 0
}

// CalculateTotals computes subtotal, tax, and total from line items.
// An empty item list yields zero totals; an empty draft is a valid state.
func CalculateTotals(items []domain.InvoiceItem, taxRate float64) Totals {
	return CalculateTotalsWithDiscount(items, taxRate, 0, false)
}

// CalculateTotalsWithDiscount additionally applies a discount, given either
// as a flat amount or as a percentage of the subtotal. Tax is computed on
// the discounted subtotal, and rounding happens once at the end so per-item
// rounding error cannot accumulate.
func CalculateTotalsWithDiscount(items []domain.InvoiceItem, taxRate, discount float64, discountIsPercent bool) Totals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Quantity * it.Rate
	}

	applied := 0.0
	if discount > 0 {
		if discountIsPercent {
			applied = subtotal * discount / 100
		} else {
			applied = discount
		}
	}

	discounted := subtotal - applied
	if discounted < 0 {
		discounted = 0
	}

	tax := discounted * taxRate

	return Totals{
		Subtotal: money.Round2(subtotal),
		Tax:      money.Round2(tax),
		Discount: money.Round2(applied),
		Total:    money.Round2(discounted + tax),
	}
}
