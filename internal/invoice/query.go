package invoice

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
)

// OutstandingAmount returns the unpaid remainder of an invoice, floored at
// zero so overpayment never reads as negative debt.
func OutstandingAmount(inv domain.Invoice, payments []domain.Payment) float64 {
	outstanding := inv.Total - PaidTotal(inv, payments)
	if outstanding < 0 {
		return 0
	}
	return outstanding
}

// PaymentPercentage returns how much of the invoice has been paid, capped
// at 100. A zero-total invoice counts as fully paid.
func PaymentPercentage(inv domain.Invoice, payments []domain.Payment) float64 {
	if inv.Total == 0 {
		return 100
	}
	pct := PaidTotal(inv, payments) / inv.Total * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Overdue returns the invoices whose due date has passed and which are
// neither paid nor still draft.
func Overdue(invoices []domain.Invoice, now time.Time) []domain.Invoice {
	var out []domain.Invoice
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceStatusPaid || inv.Status == domain.InvoiceStatusDraft {
			continue
		}
		if dates.IsPastDue(inv.DueDate, now) {
			out = append(out, inv)
		}
	}
	return out
}

// DefaultDueSoonDays is the lookahead window for DueSoon.
const DefaultDueSoonDays = 7

// DueSoon returns unpaid, non-draft invoices due within the next days.
func DueSoon(invoices []domain.Invoice, days int, now time.Time) []domain.Invoice {
	if days <= 0 {
		days = DefaultDueSoonDays
	}
	horizon := dates.AddDays(now, days)

	var out []domain.Invoice
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceStatusPaid || inv.Status == domain.InvoiceStatusDraft {
			continue
		}
		if dates.InRange(inv.DueDate, now, horizon) {
			out = append(out, inv)
		}
	}
	return out
}

// FilterByStatus returns invoices with the given status. An empty status
// means no filtering.
func FilterByStatus(invoices []domain.Invoice, status domain.InvoiceStatus) []domain.Invoice {
	if status == "" {
		return append([]domain.Invoice(nil), invoices...)
	}
	var out []domain.Invoice
	for _, inv := range invoices {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// DateField selects which invoice date a range filter applies to.
type DateField string

const (
	FieldDate    DateField = "date"
	FieldDueDate DateField = "dueDate"
)

// FilterByDateRange returns invoices whose chosen date field falls within
// [start, end] inclusive.
func FilterByDateRange(invoices []domain.Invoice, start, end time.Time, field DateField) []domain.Invoice {
	var out []domain.Invoice
	for _, inv := range invoices {
		d := inv.Date
		if field == FieldDueDate {
			d = inv.DueDate
		}
		if dates.InRange(d, start, end) {
			out = append(out, inv)
		}
	}
	return out
}

// Search returns invoices matching a case-insensitive substring search
// across client name/company/email, invoice number, notes, item
// descriptions, and the stringified total. A blank term matches everything.
func Search(invoices []domain.Invoice, clients []domain.Client, term string) []domain.Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]domain.Invoice(nil), invoices...)
	}

	byID := make(map[int64]domain.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	var out []domain.Invoice
	for _, inv := range invoices {
		if invoiceMatches(inv, byID[inv.ClientID], term) {
			out = append(out, inv)
		}
	}
	return out
}

func invoiceMatches(inv domain.Invoice, client domain.Client, term string) bool {
	fields := []string{
		client.Name,
		client.Company,
		client.Email,
		inv.InvoiceNumber,
		inv.Notes,
		strconv.FormatFloat(inv.Total, 'f', -1, 64),
	}
	for _, it := range inv.Items {
		fields = append(fields, it.Description)
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// SortField selects the sort key for Sort.
type SortField string

const (
	SortByDate    SortField = "date"
	SortByDueDate SortField = "dueDate"
	SortByTotal   SortField = "total"
	SortByStatus  SortField = "status"
	SortByNumber  SortField = "invoiceNumber"
	SortByClient  SortField = "client"
)

// statusRank fixes the status sort precedence.
var statusRank = map[domain.InvoiceStatus]int{
	domain.InvoiceStatusDraft:     0,
	domain.InvoiceStatusSent:      1,
	domain.InvoiceStatusOverdue:   2,
	domain.InvoiceStatusPaid:      3,
	domain.InvoiceStatusCancelled: 4,
}

// Sort returns a new slice sorted by the given field. The sort is stable,
// so equal keys keep their input order.
func Sort(invoices []domain.Invoice, clients []domain.Client, by SortField, ascending bool) []domain.Invoice {
	byID := make(map[int64]domain.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	out := append([]domain.Invoice(nil), invoices...)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareInvoices(out[i], out[j], byID, by)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}

func compareInvoices(a, b domain.Invoice, clients map[int64]domain.Client, by SortField) int {
	switch by {
	case SortByDate:
		return compareTimes(a.Date, b.Date)
	case SortByDueDate:
		return compareTimes(a.DueDate, b.DueDate)
	case SortByTotal:
		switch {
		case a.Total < b.Total:
			return -1
		case a.Total > b.Total:
			return 1
		}
		return 0
	case SortByStatus:
		return statusRank[a.Status] - statusRank[b.Status]
	case SortByNumber:
		return strings.Compare(a.InvoiceNumber, b.InvoiceNumber)
	case SortByClient:
		return strings.Compare(clients[a.ClientID].Name, clients[b.ClientID].Name)
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
