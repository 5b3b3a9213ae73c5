package invoice

import (
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
)

// Statistics is the dashboard-level aggregate over the invoice and payment
// collections.
type Statistics struct {
	TotalInvoices       int
	TotalRevenue        float64
	AverageInvoiceValue float64
	PaidInvoices        int
	PendingInvoices     int
	OverdueInvoices     int
	DraftInvoices       int
	TotalPaidAmount     float64
	TotalOutstanding    float64
	PaymentRate         float64 // percentage of invoices paid
}

// CalculateStatistics reduces the invoice and payment collections to
// dashboard metrics in a single pass per collection; nothing is cached.
func CalculateStatistics(invoices []domain.Invoice, payments []domain.Payment, now time.Time) Statistics {
	stats := Statistics{TotalInvoices: len(invoices)}

	paidByInvoice := make(map[int64]float64, len(invoices))
	for _, p := range payments {
		stats.TotalPaidAmount += p.Amount
		paidByInvoice[p.InvoiceID] += p.Amount
	}

	for _, inv := range invoices {
		stats.TotalRevenue += inv.Total

		switch inv.Status {
		case domain.InvoiceStatusPaid:
			stats.PaidInvoices++
		case domain.InvoiceStatusSent:
			stats.PendingInvoices++
		case domain.InvoiceStatusDraft:
			stats.DraftInvoices++
		}

		if inv.Status != domain.InvoiceStatusPaid && inv.Status != domain.InvoiceStatusDraft &&
			dates.IsPastDue(inv.DueDate, now) {
			stats.OverdueInvoices++
		}

		if outstanding := inv.Total - paidByInvoice[inv.ID]; outstanding > 0 {
			stats.TotalOutstanding += outstanding
		}
	}

	if stats.TotalInvoices > 0 {
		stats.AverageInvoiceValue = stats.TotalRevenue / float64(stats.TotalInvoices)
		stats.PaymentRate = float64(stats.PaidInvoices) / float64(stats.TotalInvoices) * 100
	}

	return stats
}

// PeriodBucket accumulates invoices grouped into one calendar bucket.
type PeriodBucket struct {
	Count int
	Total float64
	Paid  float64
}

// SummaryByPeriod groups invoices by the period key of their invoice date
// (see dates.Key), accumulating count, total value, and paid value per
// bucket.
func SummaryByPeriod(invoices []domain.Invoice, period dates.Period) map[string]PeriodBucket {
	summary := make(map[string]PeriodBucket)

	for _, inv := range invoices {
		key := dates.Key(period, inv.Date)
		bucket := summary[key]

		bucket.Count++
		bucket.Total += inv.Total
		if inv.Status == domain.InvoiceStatusPaid {
			bucket.Paid += inv.Total
		}

		summary[key] = bucket
	}

	return summary
}
