package invoice

import (
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
)

// StatusPolicy configures status derivation.
//
// StickyPaid controls whether a stored paid status survives even when the
// payment sum no longer covers the total (for example after a payment row
// is removed by hand). The shipped config enables it; with it off, the
// derived status follows the payments wherever they stand.
type StatusPolicy struct {
	StickyPaid bool
}

// PaidTotal sums the payments recorded against an invoice.
func PaidTotal(inv domain.Invoice, payments []domain.Payment) float64 {
	total := 0.0
	for _, p := range payments {
		if p.InvoiceID == inv.ID {
			total += p.Amount
		}
	}
	return total
}

// DeriveStatus computes an invoice's effective status from its payments and
// due date. It never mutates the invoice; the host decides when to write
// the result back.
//
// Drafts are never promoted, cancelled is terminal, and a fully covered
// total means paid regardless of the due date.
func DeriveStatus(inv domain.Invoice, payments []domain.Payment, now time.Time, policy StatusPolicy) domain.InvoiceStatus {
	switch inv.Status {
	case domain.InvoiceStatusDraft:
		return domain.InvoiceStatusDraft
	case domain.InvoiceStatusCancelled:
		return domain.InvoiceStatusCancelled
	}

	if policy.StickyPaid && inv.Status == domain.InvoiceStatusPaid {
		return domain.InvoiceStatusPaid
	}

	if PaidTotal(inv, payments) >= inv.Total {
		return domain.InvoiceStatusPaid
	}

	if dates.IsPastDue(inv.DueDate, now) {
		return domain.InvoiceStatusOverdue
	}

	return domain.InvoiceStatusSent
}
