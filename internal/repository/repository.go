package repository

import (
	"context"
	"errors"

	"github.com/andy/invoicekit/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context, includeArchived bool) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Archive(ctx context.Context, id int64) error
	Unarchive(ctx context.Context, id int64) error
}

// InvoiceRepository manages invoice persistence, items included
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	List(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]domain.Invoice, error)
	// Update rewrites the invoice row and replaces its items atomically
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository manages payment persistence. Payments are append-only;
// there is no update operation.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	// List returns payments, optionally filtered to one invoice
	List(ctx context.Context, invoiceID *int64) ([]domain.Payment, error)
}
