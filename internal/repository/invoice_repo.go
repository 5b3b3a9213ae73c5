package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/invoicekit/internal/db"
	"github.com/andy/invoicekit/internal/domain"
)

// InvoiceRepo is a SQLite implementation of InvoiceRepository
type InvoiceRepo struct {
	db *db.DB
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(database *db.DB) *InvoiceRepo {
	return &InvoiceRepo{db: database}
}

const invoiceColumns = `id, invoice_number, client_id, date, due_date,
	subtotal, tax, discount, total, status, notes,
	sent_at, paid_at, created_at, updated_at`

// Create inserts a new invoice and its items in a single transaction
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (
			invoice_number, client_id, date, due_date,
			subtotal, tax, discount, total, status, notes,
			sent_at, paid_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		invoice.InvoiceNumber,
		invoice.ClientID,
		invoice.Date.Format(dateLayout),
		invoice.DueDate.Format(dateLayout),
		invoice.Subtotal,
		invoice.Tax,
		invoice.Discount,
		invoice.Total,
		string(invoice.Status),
		invoice.Notes,
		nullableTime(invoice.SentAt),
		nullableTime(invoice.PaidAt),
		invoice.CreatedAt.Format(timeLayout),
		invoice.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get invoice ID: %w", err)
	}

	if err := insertItems(ctx, tx, id, invoice.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves an invoice with its items by ID
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	query := "SELECT " + invoiceColumns + " FROM invoices WHERE id = ?"
	invoice, err := r.scanOne(ctx, r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetByNumber retrieves an invoice with its items by invoice number
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	query := "SELECT " + invoiceColumns + " FROM invoices WHERE invoice_number = ?"
	invoice, err := r.scanOne(ctx, r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// List retrieves invoices, optionally filtered by client and status
func (r *InvoiceRepo) List(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := "SELECT " + invoiceColumns + " FROM invoices"
	var conditions []string
	var args []interface{}

	if clientID != nil {
		conditions = append(conditions, "client_id = ?")
		args = append(args, *clientID)
	}
	if status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*status))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range invoices {
		items, err := r.loadItems(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		invoices[i].Items = items
	}

	return invoices, nil
}

// Update rewrites an invoice row and replaces its items atomically
func (r *InvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE invoices
		SET invoice_number = ?, client_id = ?, date = ?, due_date = ?,
		    subtotal = ?, tax = ?, discount = ?, total = ?, status = ?, notes = ?,
		    sent_at = ?, paid_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		invoice.InvoiceNumber,
		invoice.ClientID,
		invoice.Date.Format(dateLayout),
		invoice.DueDate.Format(dateLayout),
		invoice.Subtotal,
		invoice.Tax,
		invoice.Discount,
		invoice.Total,
		string(invoice.Status),
		invoice.Notes,
		nullableTime(invoice.SentAt),
		nullableTime(invoice.PaidAt),
		invoice.UpdatedAt.Format(timeLayout),
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("invoice %d: %w", invoice.ID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_items WHERE invoice_id = ?", invoice.ID); err != nil {
		return fmt.Errorf("failed to clear invoice items: %w", err)
	}
	if err := insertItems(ctx, tx, invoice.ID, invoice.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice update: %w", err)
	}

	return nil
}

// Delete removes an invoice; items and payments cascade
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}

	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, invoiceID int64, items []domain.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, rate, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, item := range items {
		if _, err := tx.ExecContext(ctx, query,
			item.ID,
			invoiceID,
			i,
			item.Description,
			item.Quantity,
			item.Rate,
			item.Amount,
		); err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID int64) ([]domain.InvoiceItem, error) {
	query := `
		SELECT id, description, quantity, rate, amount
		FROM invoice_items
		WHERE invoice_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice items: %w", err)
	}
	defer rows.Close()

	var items []domain.InvoiceItem
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Quantity, &item.Rate, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *InvoiceRepo) scanOne(ctx context.Context, row rowScanner) (*domain.Invoice, error) {
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items

	return invoice, nil
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	invoice := &domain.Invoice{}
	var date, dueDate string
	var notes sql.NullString
	var status string
	var sentAt, paidAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.ClientID,
		&date,
		&dueDate,
		&invoice.Subtotal,
		&invoice.Tax,
		&invoice.Discount,
		&invoice.Total,
		&status,
		&notes,
		&sentAt,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}

	invoice.Notes = notes.String
	invoice.Status = domain.InvoiceStatus(status)

	if invoice.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	if invoice.DueDate, err = parseDate(dueDate); err != nil {
		return nil, fmt.Errorf("failed to parse due_date: %w", err)
	}
	if invoice.SentAt, err = scanNullableTime(sentAt); err != nil {
		return nil, fmt.Errorf("failed to parse sent_at: %w", err)
	}
	if invoice.PaidAt, err = scanNullableTime(paidAt); err != nil {
		return nil, fmt.Errorf("failed to parse paid_at: %w", err)
	}
	if invoice.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if invoice.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return invoice, nil
}
