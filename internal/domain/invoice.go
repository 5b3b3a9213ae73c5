package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/andy/invoicekit/internal/money"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ParseInvoiceStatus converts a string to a known status.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return InvoiceStatus(s), nil
	}
	return "", errors.New("unknown invoice status: " + s)
}

type Invoice struct {
	ID            int64
	ClientID      int64
	InvoiceNumber string
	Date          time.Time
	DueDate       time.Time
	Items         []InvoiceItem
	Subtotal      float64
	Tax           float64
	Discount      float64
	Total         float64
	Status        InvoiceStatus
	Notes         string
	SentAt        *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Related data (populated by repository)
	Client *Client
}

// InvoiceItem is a single billable line. Amount is always derived from
// Quantity and Rate; use the setters so the three never diverge.
type InvoiceItem struct {
	ID          string
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
}

// NewInvoiceItem creates an item with a fresh ID and a derived amount.
func NewInvoiceItem(description string, quantity, rate float64) InvoiceItem {
	return InvoiceItem{
		ID:          uuid.NewString(),
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      money.Round2(quantity * rate),
	}
}

// SetQuantity updates the quantity and recomputes the amount.
func (it *InvoiceItem) SetQuantity(quantity float64) {
	it.Quantity = quantity
	it.Amount = money.Round2(it.Quantity * it.Rate)
}

// SetRate updates the rate and recomputes the amount.
func (it *InvoiceItem) SetRate(rate float64) {
	it.Rate = rate
	it.Amount = money.Round2(it.Quantity * it.Rate)
}

// Duplicate returns a copy of the item under a new ID.
func (it InvoiceItem) Duplicate() InvoiceItem {
	dup := it
	dup.ID = uuid.NewString()
	return dup
}

// NewInvoice creates a new draft invoice
func NewInvoice(invoiceNumber string, clientID int64, date, dueDate time.Time) *Invoice {
	now := time.Now()
	return &Invoice{
		InvoiceNumber: invoiceNumber,
		ClientID:      clientID,
		Date:          date,
		DueDate:       dueDate,
		Status:        InvoiceStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         make([]InvoiceItem, 0),
	}
}

// CanEdit returns true if the invoice's line items can be modified
func (i *Invoice) CanEdit() bool {
	return i.Status == InvoiceStatusDraft
}

// IsClosed returns true if the invoice reached a terminal state
func (i *Invoice) IsClosed() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// Send marks a draft invoice as sent. Sending is the only explicit
// promotion out of draft; every later status is derived from payments.
func (i *Invoice) Send(now time.Time) error {
	if i.Status != InvoiceStatusDraft {
		return errors.New("only draft invoices can be sent")
	}
	i.Status = InvoiceStatusSent
	i.SentAt = &now
	i.UpdatedAt = now
	return nil
}

// Cancel moves the invoice to the terminal cancelled state.
func (i *Invoice) Cancel(now time.Time) error {
	if i.Status == InvoiceStatusPaid {
		return errors.New("paid invoices cannot be cancelled")
	}
	if i.Status == InvoiceStatusCancelled {
		return errors.New("invoice is already cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = now
	return nil
}

// ItemByID returns a pointer to the item with the given ID, or nil.
func (i *Invoice) ItemByID(id string) *InvoiceItem {
	for idx := range i.Items {
		if i.Items[idx].ID == id {
			return &i.Items[idx]
		}
	}
	return nil
}

// Validate returns an error if the invoice is structurally invalid
func (i *Invoice) Validate() error {
	if i.InvoiceNumber == "" {
		return errors.New("invoice number is required")
	}
	if i.ClientID <= 0 {
		return errors.New("client ID is required")
	}
	if i.Date.IsZero() {
		return errors.New("invoice date is required")
	}
	if i.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	if i.DueDate.Before(i.Date) {
		return errors.New("due date must not be before invoice date")
	}
	return nil
}
