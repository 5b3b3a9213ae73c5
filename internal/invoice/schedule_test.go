package invoice

import (
	"testing"
	"time"

	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/money"
)

func TestPaymentSchedule_SingleInstallment(t *testing.T) {
	inv := domain.Invoice{
		Date:    day(2025, time.June, 1),
		DueDate: day(2025, time.July, 1),
		Total:   1000,
	}

	for _, n := range []int{0, 1, -3} {
		schedule := PaymentSchedule(inv, n)
		if len(schedule) != 1 {
			t.Fatalf("installments=%d: expected 1 payment, got %d", n, len(schedule))
		}
		if schedule[0].Amount != 1000 {
			t.Errorf("amount = %v, want 1000", schedule[0].Amount)
		}
		if !schedule[0].DueDate.Equal(inv.DueDate) {
			t.Errorf("due = %v, want invoice due date", schedule[0].DueDate)
		}
	}
}

func TestPaymentSchedule_EvenSplit(t *testing.T) {
	inv := domain.Invoice{
		Date:    day(2025, time.June, 1),
		DueDate: day(2025, time.July, 1),
		Total:   900,
	}

	schedule := PaymentSchedule(inv, 3)
	if len(schedule) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(schedule))
	}

	for i, p := range schedule {
		if p.Amount != 300 {
			t.Errorf("payment %d amount = %v, want 300", i+1, p.Amount)
		}
	}

	// 30-day span split three ways: days 10, 20, 30
	wantDays := []time.Time{
		day(2025, time.June, 11),
		day(2025, time.June, 21),
		day(2025, time.July, 1),
	}
	for i, p := range schedule {
		if !p.DueDate.Equal(wantDays[i]) {
			t.Errorf("payment %d due = %v, want %v", i+1, p.DueDate, wantDays[i])
		}
	}
}

func TestPaymentSchedule_UnevenSpanRoundsDueDates(t *testing.T) {
	inv := domain.Invoice{
		Date:    day(2025, time.June, 1),
		DueDate: day(2025, time.June, 11),
		Total:   900,
	}

	schedule := PaymentSchedule(inv, 3)

	// 10-day span split three ways rounds to days 3, 7, 10.
	wantDays := []time.Time{
		day(2025, time.June, 4),
		day(2025, time.June, 8),
		day(2025, time.June, 11),
	}
	for i, p := range schedule {
		if !p.DueDate.Equal(wantDays[i]) {
			t.Errorf("payment %d due = %v, want %v", i+1, p.DueDate, wantDays[i])
		}
	}
}

func TestPaymentSchedule_RemainderOnLast(t *testing.T) {
	inv := domain.Invoice{
		Date:    day(2025, time.June, 1),
		DueDate: day(2025, time.July, 1),
		Total:   100,
	}

	schedule := PaymentSchedule(inv, 3)

	sum := 0.0
	for _, p := range schedule {
		sum += p.Amount
	}
	if money.Round2(sum) != 100 {
		t.Errorf("schedule sums to %v, want exactly 100", sum)
	}
	if schedule[0].Amount != 33.33 || schedule[1].Amount != 33.33 {
		t.Errorf("expected 33.33 installments, got %v and %v", schedule[0].Amount, schedule[1].Amount)
	}
	if schedule[2].Amount != 33.34 {
		t.Errorf("last installment must absorb the remainder, got %v", schedule[2].Amount)
	}
}
