package domain

import (
	"testing"
	"time"
)

func TestParsePaymentMethod(t *testing.T) {
	valid := []string{"cash", "check", "bank_transfer", "credit_card", "paypal", "other"}
	for _, s := range valid {
		got, err := ParsePaymentMethod(s)
		if err != nil {
			t.Errorf("ParsePaymentMethod(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParsePaymentMethod(%q) = %q", s, got)
		}
	}
	if _, err := ParsePaymentMethod("bitcoin"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestPaymentValidate(t *testing.T) {
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*Payment)
		ok     bool
	}{
		{"valid", func(p *Payment) {}, true},
		{"no invoice", func(p *Payment) { p.InvoiceID = 0 }, false},
		{"zero amount", func(p *Payment) { p.Amount = 0 }, false},
		{"negative amount", func(p *Payment) { p.Amount = -5 }, false},
		{"no date", func(p *Payment) { p.Date = time.Time{} }, false},
		{"bad method", func(p *Payment) { p.Method = "iou" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPayment(1, 250, date, PaymentMethodBankTransfer)
			tt.mutate(p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}
