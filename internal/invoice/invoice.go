package invoice

import (
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
)

// DefaultDueDays is the due-date offset applied when duplicating invoices.
const DefaultDueDays = 30

// DaysUntilDue returns the number of days until the invoice's due date,
// negative once the date has passed.
func DaysUntilDue(inv domain.Invoice, now time.Time) int {
	days := dates.DaysBetween(now, inv.DueDate)
	if dates.Before(inv.DueDate, now) {
		return -days
	}
	return days
}

// Age returns the number of days since the invoice date.
func Age(inv domain.Invoice, now time.Time) int {
	return dates.DaysBetween(inv.Date, now)
}

// Duplicate returns a fresh draft copy of an invoice: a newly generated
// number, today's date, a due date DefaultDueDays out, and new item IDs.
// The copy's record ID is zero so the store assigns its own.
func Duplicate(inv domain.Invoice, existing []domain.Invoice, cfg NumberConfig, now time.Time) domain.Invoice {
	dup := inv
	dup.ID = 0
	dup.InvoiceNumber = GenerateNumber(existing, cfg, now)
	dup.Date = dates.Day(now)
	dup.DueDate = dates.AddDays(dup.Date, DefaultDueDays)
	dup.Status = domain.InvoiceStatusDraft
	dup.SentAt = nil
	dup.PaidAt = nil
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Client = nil

	dup.Items = make([]domain.InvoiceItem, len(inv.Items))
	for i, it := range inv.Items {
		dup.Items[i] = it.Duplicate()
	}

	return dup
}
