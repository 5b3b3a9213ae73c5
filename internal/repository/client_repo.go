package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/invoicekit/internal/db"
	"github.com/andy/invoicekit/internal/domain"
)

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db *db.DB
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB) *ClientRepo {
	return &ClientRepo{db: database}
}

const clientColumns = "id, name, email, company, address, phone, notes, is_archived, created_at, updated_at"

// Create inserts a new client into the database
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	query := `
		INSERT INTO clients (name, email, company, address, phone, notes, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.Email,
		client.Company,
		client.Address,
		client.Phone,
		client.Notes,
		client.IsArchived,
		client.CreatedAt.Format(timeLayout),
		client.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get client ID: %w", err)
	}

	client.ID = id
	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a client by name
func (r *ClientRepo) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE name = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// List retrieves all clients, optionally including archived ones
func (r *ClientRepo) List(ctx context.Context, includeArchived bool) ([]domain.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients"
	if !includeArchived {
		query += " WHERE is_archived = 0"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}

	return clients, rows.Err()
}

// Update saves changes to an existing client
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	query := `
		UPDATE clients
		SET name = ?, email = ?, company = ?, address = ?, phone = ?, notes = ?,
		    is_archived = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.Email,
		client.Company,
		client.Address,
		client.Phone,
		client.Notes,
		client.IsArchived,
		client.UpdatedAt.Format(timeLayout),
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("client %d: %w", client.ID, ErrNotFound)
	}

	return nil
}

// Archive marks a client as archived
func (r *ClientRepo) Archive(ctx context.Context, id int64) error {
	return r.setArchived(ctx, id, true)
}

// Unarchive restores an archived client
func (r *ClientRepo) Unarchive(ctx context.Context, id int64) error {
	return r.setArchived(ctx, id, false)
}

func (r *ClientRepo) setArchived(ctx context.Context, id int64, archived bool) error {
	query := "UPDATE clients SET is_archived = ?, updated_at = datetime('now') WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, archived, id)
	if err != nil {
		return fmt.Errorf("failed to update client archive state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ClientRepo) scanOne(row rowScanner) (*domain.Client, error) {
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var email, company, address, phone, notes sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&client.ID,
		&client.Name,
		&email,
		&company,
		&address,
		&phone,
		&notes,
		&client.IsArchived,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}

	client.Email = email.String
	client.Company = company.String
	client.Address = address.String
	client.Phone = phone.String
	client.Notes = notes.String

	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if client.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return client, nil
}
