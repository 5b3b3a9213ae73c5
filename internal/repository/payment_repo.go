package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/invoicekit/internal/db"
	"github.com/andy/invoicekit/internal/domain"
)

// PaymentRepo is a SQLite implementation of PaymentRepository.
// Payments are append-only; there is no update path.
type PaymentRepo struct {
	db *db.DB
}

// NewPaymentRepo creates a new PaymentRepo
func NewPaymentRepo(database *db.DB) *PaymentRepo {
	return &PaymentRepo{db: database}
}

const paymentColumns = "id, invoice_id, amount, date, method, reference, notes, created_at"

// Create inserts a new payment into the database
func (r *PaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	if err := payment.Validate(); err != nil {
		return fmt.Errorf("invalid payment: %w", err)
	}

	query := `
		INSERT INTO payments (invoice_id, amount, date, method, reference, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.InvoiceID,
		payment.Amount,
		payment.Date.Format(dateLayout),
		string(payment.Method),
		payment.Reference,
		payment.Notes,
		payment.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get payment ID: %w", err)
	}

	payment.ID = id
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payments WHERE id = ?"

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return payment, nil
}

// List retrieves payments, optionally filtered by invoice
func (r *PaymentRepo) List(ctx context.Context, invoiceID *int64) ([]domain.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payments"
	var args []interface{}

	if invoiceID != nil {
		query += " WHERE invoice_id = ?"
		args = append(args, *invoiceID)
	}
	query += " ORDER BY date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}

	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	payment := &domain.Payment{}
	var date string
	var method string
	var reference, notes sql.NullString
	var createdAt string

	err := row.Scan(
		&payment.ID,
		&payment.InvoiceID,
		&payment.Amount,
		&date,
		&method,
		&reference,
		&notes,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	payment.Method = domain.PaymentMethod(method)
	payment.Reference = reference.String
	payment.Notes = notes.String

	if payment.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	if payment.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return payment, nil
}
