package invoice

import (
	"testing"
	"time"

	"github.com/andy/invoicekit/internal/domain"
)

var statusNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func sentInvoice(id int64, total float64, due time.Time) domain.Invoice {
	return domain.Invoice{
		ID:      id,
		Status:  domain.InvoiceStatusSent,
		Total:   total,
		Date:    due.AddDate(0, 0, -30),
		DueDate: due,
	}
}

func payment(invoiceID int64, amount float64) domain.Payment {
	return domain.Payment{InvoiceID: invoiceID, Amount: amount, Date: statusNow}
}

func TestDeriveStatus(t *testing.T) {
	future := statusNow.AddDate(0, 0, 10)
	past := statusNow.AddDate(0, 0, -10)

	tests := []struct {
		name     string
		inv      domain.Invoice
		payments []domain.Payment
		want     domain.InvoiceStatus
	}{
		{
			name: "sent and not due",
			inv:  sentInvoice(1, 1000, future),
			want: domain.InvoiceStatusSent,
		},
		{
			name: "past due without payment",
			inv:  sentInvoice(1, 1000, past),
			want: domain.InvoiceStatusOverdue,
		},
		{
			name:     "fully paid",
			inv:      sentInvoice(1, 1000, future),
			payments: []domain.Payment{payment(1, 1000)},
			want:     domain.InvoiceStatusPaid,
		},
		{
			name:     "paid beats overdue",
			inv:      sentInvoice(1, 1000, past),
			payments: []domain.Payment{payment(1, 600), payment(1, 400)},
			want:     domain.InvoiceStatusPaid,
		},
		{
			name:     "partial payment past due",
			inv:      sentInvoice(1, 1000, past),
			payments: []domain.Payment{payment(1, 500)},
			want:     domain.InvoiceStatusOverdue,
		},
		{
			name:     "overpayment is still paid",
			inv:      sentInvoice(1, 1000, future),
			payments: []domain.Payment{payment(1, 1500)},
			want:     domain.InvoiceStatusPaid,
		},
		{
			name:     "other invoices' payments ignored",
			inv:      sentInvoice(1, 1000, future),
			payments: []domain.Payment{payment(2, 1000)},
			want:     domain.InvoiceStatusSent,
		},
		{
			name: "draft never promoted",
			inv: domain.Invoice{
				ID: 1, Status: domain.InvoiceStatusDraft, Total: 1000, DueDate: past,
			},
			payments: []domain.Payment{payment(1, 1000)},
			want:     domain.InvoiceStatusDraft,
		},
		{
			name: "cancelled is terminal",
			inv: domain.Invoice{
				ID: 1, Status: domain.InvoiceStatusCancelled, Total: 1000, DueDate: past,
			},
			payments: []domain.Payment{payment(1, 1000)},
			want:     domain.InvoiceStatusCancelled,
		},
		{
			name: "zero total counts as paid",
			inv:  sentInvoice(1, 0, future),
			want: domain.InvoiceStatusPaid,
		},
		{
			name: "due today is not overdue",
			inv:  sentInvoice(1, 1000, statusNow),
			want: domain.InvoiceStatusSent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.inv, tt.payments, statusNow, StatusPolicy{})
			if got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus_StickyPaid(t *testing.T) {
	inv := sentInvoice(1, 1000, statusNow.AddDate(0, 0, 10))
	inv.Status = domain.InvoiceStatusPaid

	// No payments on record anymore
	got := DeriveStatus(inv, nil, statusNow, StatusPolicy{StickyPaid: true})
	if got != domain.InvoiceStatusPaid {
		t.Errorf("sticky policy should keep paid, got %s", got)
	}

	got = DeriveStatus(inv, nil, statusNow, StatusPolicy{StickyPaid: false})
	if got != domain.InvoiceStatusSent {
		t.Errorf("non-sticky policy should re-derive to sent, got %s", got)
	}
}

func TestPaidTotal(t *testing.T) {
	inv := sentInvoice(7, 500, statusNow)
	payments := []domain.Payment{
		payment(7, 100),
		payment(7, 150),
		payment(8, 999),
	}

	if got := PaidTotal(inv, payments); got != 250 {
		t.Errorf("PaidTotal() = %v, want 250", got)
	}
	if got := PaidTotal(inv, nil); got != 0 {
		t.Errorf("PaidTotal() with no payments = %v, want 0", got)
	}
}
