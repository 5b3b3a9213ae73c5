package domain

import (
	"testing"
	"time"
)

func testInvoice() *Invoice {
	return NewInvoice("INV-25-001", 1,
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
}

func TestParseInvoiceStatus(t *testing.T) {
	for _, s := range []string{"draft", "sent", "paid", "overdue", "cancelled"} {
		got, err := ParseInvoiceStatus(s)
		if err != nil {
			t.Errorf("ParseInvoiceStatus(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseInvoiceStatus(%q) = %q", s, got)
		}
	}
	if _, err := ParseInvoiceStatus("open"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestNewInvoice(t *testing.T) {
	inv := testInvoice()

	if inv.Status != InvoiceStatusDraft {
		t.Errorf("status = %s, want draft", inv.Status)
	}
	if inv.Items == nil || len(inv.Items) != 0 {
		t.Error("items should be an empty slice")
	}
	if !inv.CanEdit() {
		t.Error("a new draft should be editable")
	}
	if inv.IsClosed() {
		t.Error("a new draft is not closed")
	}
}

func TestInvoiceSend(t *testing.T) {
	inv := testInvoice()
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

	if err := inv.Send(now); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if inv.Status != InvoiceStatusSent {
		t.Errorf("status = %s, want sent", inv.Status)
	}
	if inv.SentAt == nil || !inv.SentAt.Equal(now) {
		t.Error("SentAt should record the send time")
	}
	if inv.CanEdit() {
		t.Error("sent invoices are not editable")
	}

	if err := inv.Send(now); err == nil {
		t.Error("sending twice should fail")
	}
}

func TestInvoiceCancel(t *testing.T) {
	inv := testInvoice()
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

	if err := inv.Cancel(now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if inv.Status != InvoiceStatusCancelled {
		t.Errorf("status = %s, want cancelled", inv.Status)
	}
	if !inv.IsClosed() {
		t.Error("cancelled invoices are closed")
	}
	if err := inv.Cancel(now); err == nil {
		t.Error("cancelling twice should fail")
	}
}

func TestInvoiceCancel_PaidRejected(t *testing.T) {
	inv := testInvoice()
	inv.Status = InvoiceStatusPaid
	if err := inv.Cancel(time.Now()); err == nil {
		t.Error("paid invoices must not be cancellable")
	}
}

func TestItemByID(t *testing.T) {
	inv := testInvoice()
	inv.Items = append(inv.Items,
		NewInvoiceItem("Design", 10, 100),
		NewInvoiceItem("Development", 20, 80),
	)

	it := inv.ItemByID(inv.Items[1].ID)
	if it == nil {
		t.Fatal("item not found")
	}
	if it.Description != "Development" {
		t.Errorf("got %q", it.Description)
	}

	// The pointer aliases the slice element.
	it.SetQuantity(5)
	if inv.Items[1].Quantity != 5 {
		t.Error("mutation through the returned pointer should stick")
	}

	if inv.ItemByID("missing") != nil {
		t.Error("unknown ID should return nil")
	}
}

func TestInvoiceValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Invoice)
		ok     bool
	}{
		{"valid", func(i *Invoice) {}, true},
		{"no number", func(i *Invoice) { i.InvoiceNumber = "" }, false},
		{"no client", func(i *Invoice) { i.ClientID = 0 }, false},
		{"no date", func(i *Invoice) { i.Date = time.Time{} }, false},
		{"no due date", func(i *Invoice) { i.DueDate = time.Time{} }, false},
		{"due before date", func(i *Invoice) { i.DueDate = i.Date.AddDate(0, 0, -1) }, false},
		{"due equals date", func(i *Invoice) { i.DueDate = i.Date }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := testInvoice()
			tt.mutate(inv)
			err := inv.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestInvoiceItemSetters(t *testing.T) {
	it := NewInvoiceItem("Consulting", 3, 33.33)
	if it.ID == "" {
		t.Error("item should get an ID")
	}
	if it.Amount != 99.99 {
		t.Errorf("amount = %v, want 99.99", it.Amount)
	}

	it.SetQuantity(4)
	if it.Amount != 133.32 {
		t.Errorf("amount after SetQuantity = %v, want 133.32", it.Amount)
	}

	it.SetRate(50)
	if it.Amount != 200 {
		t.Errorf("amount after SetRate = %v, want 200", it.Amount)
	}
}

func TestInvoiceItemDuplicate(t *testing.T) {
	it := NewInvoiceItem("Consulting", 3, 50)
	dup := it.Duplicate()

	if dup.ID == it.ID {
		t.Error("duplicate must get a new ID")
	}
	if dup.Description != it.Description || dup.Quantity != it.Quantity ||
		dup.Rate != it.Rate || dup.Amount != it.Amount {
		t.Error("duplicate must carry all other fields")
	}
}
