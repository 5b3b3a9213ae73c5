package domain

import (
	"errors"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodOther        PaymentMethod = "other"
)

// ParsePaymentMethod converts a string to a known payment method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer,
		PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodOther:
		return PaymentMethod(s), nil
	}
	return "", errors.New("unknown payment method: " + s)
}

// Payment is an append-only record of money received against an invoice.
// The amount an invoice has been paid is always derived by summing its
// payments, never stored on the invoice itself.
type Payment struct {
	ID        int64
	InvoiceID int64
	Amount    float64
	Date      time.Time
	Method    PaymentMethod
	Reference string
	Notes     string
	CreatedAt time.Time
}

// NewPayment creates a payment record
func NewPayment(invoiceID int64, amount float64, date time.Time, method PaymentMethod) *Payment {
	return &Payment{
		InvoiceID: invoiceID,
		Amount:    amount,
		Date:      date,
		Method:    method,
		CreatedAt: time.Now(),
	}
}

// Validate returns an error if the payment is invalid
func (p *Payment) Validate() error {
	if p.InvoiceID <= 0 {
		return errors.New("invoice ID is required")
	}
	if p.Amount <= 0 {
		return errors.New("payment amount must be positive")
	}
	if p.Date.IsZero() {
		return errors.New("payment date is required")
	}
	if _, err := ParsePaymentMethod(string(p.Method)); err != nil {
		return err
	}
	return nil
}
