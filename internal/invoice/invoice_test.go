package invoice

import (
	"testing"
	"time"

	"github.com/andy/invoicekit/internal/domain"
)

func TestDaysUntilDue(t *testing.T) {
	now := day(2025, time.June, 15)

	tests := []struct {
		due  time.Time
		want int
	}{
		{day(2025, time.June, 25), 10},
		{day(2025, time.June, 15), 0},
		{day(2025, time.June, 10), -5},
	}

	for _, tt := range tests {
		inv := domain.Invoice{DueDate: tt.due}
		if got := DaysUntilDue(inv, now); got != tt.want {
			t.Errorf("DaysUntilDue(due=%v) = %d, want %d", tt.due, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	now := day(2025, time.June, 15)
	inv := domain.Invoice{Date: day(2025, time.May, 16)}

	if got := Age(inv, now); got != 30 {
		t.Errorf("Age() = %d, want 30", got)
	}
}

func TestDuplicate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)
	sentAt := day(2025, time.May, 2)

	orig := domain.Invoice{
		ID:            7,
		ClientID:      3,
		InvoiceNumber: "INV-25-001",
		Date:          day(2025, time.May, 1),
		DueDate:       day(2025, time.May, 31),
		Subtotal:      1000,
		Tax:           100,
		Total:         1100,
		Status:        domain.InvoiceStatusPaid,
		Notes:         "original notes",
		SentAt:        &sentAt,
		PaidAt:        &sentAt,
		Items: []domain.InvoiceItem{
			domain.NewInvoiceItem("Design", 10, 100),
		},
	}
	existing := []domain.Invoice{orig}

	dup := Duplicate(orig, existing, DefaultNumberConfig(), now)

	if dup.ID != 0 {
		t.Error("duplicate must have zero ID")
	}
	if dup.InvoiceNumber == orig.InvoiceNumber {
		t.Error("duplicate must get a fresh number")
	}
	if !dup.Date.Equal(day(2025, time.June, 15)) {
		t.Errorf("date = %v, want today", dup.Date)
	}
	if !dup.DueDate.Equal(dup.Date.AddDate(0, 0, DefaultDueDays)) {
		t.Errorf("due date = %v, want %d days out", dup.DueDate, DefaultDueDays)
	}
	if dup.Status != domain.InvoiceStatusDraft {
		t.Errorf("status = %s, want draft", dup.Status)
	}
	if dup.SentAt != nil || dup.PaidAt != nil {
		t.Error("lifecycle timestamps must reset")
	}
	if dup.Total != orig.Total || dup.Subtotal != orig.Subtotal {
		t.Error("financials must carry over")
	}
	if len(dup.Items) != 1 {
		t.Fatal("items must be copied")
	}
	if dup.Items[0].ID == orig.Items[0].ID {
		t.Error("copied items must get new IDs")
	}
	if dup.Items[0].Amount != orig.Items[0].Amount {
		t.Error("item amounts must carry over")
	}

	// Mutating the copy must not touch the original
	dup.Items[0].Description = "changed"
	if orig.Items[0].Description != "Design" {
		t.Error("duplicate shares item storage with the original")
	}
}
