package invoice

import (
	"fmt"
	"math"
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/money"
)

// ScheduledPayment is one suggested installment toward an invoice total.
type ScheduledPayment struct {
	DueDate     time.Time
	Amount      float64
	Description string
}

// PaymentSchedule suggests an installment plan spread evenly between the
// invoice date and its due date. The final installment absorbs any rounding
// remainder so the schedule always sums to the exact total.
func PaymentSchedule(inv domain.Invoice, installments int) []ScheduledPayment {
	if installments <= 1 {
		return []ScheduledPayment{{
			DueDate:     inv.DueDate,
			Amount:      inv.Total,
			Description: "Full payment",
		}}
	}

	per := money.Round2(inv.Total / float64(installments))
	last := money.Round2(inv.Total - per*float64(installments-1))
	span := dates.DaysBetween(inv.Date, inv.DueDate)

	schedule := make([]ScheduledPayment, 0, installments)
	for i := 0; i < installments; i++ {
		amount := per
		if i == installments-1 {
			amount = last
		}

		offset := int(math.Round(float64(span) * float64(i+1) / float64(installments)))
		schedule = append(schedule, ScheduledPayment{
			DueDate:     dates.AddDays(inv.Date, offset),
			Amount:      amount,
			Description: fmt.Sprintf("Payment %d of %d", i+1, installments),
		})
	}

	return schedule
}
