package service

import (
	"context"
	"errors"
	"time"

	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/repository"
)

var ErrClientHasOpenInvoices = errors.New("client has open invoices")

// ClientService manages the client roster
type ClientService interface {
	// CreateClient adds a new client
	CreateClient(ctx context.Context, name, email, company string) (*domain.Client, error)

	// UpdateClient saves changes to an existing client
	UpdateClient(ctx context.Context, client *domain.Client) error

	// ArchiveClient hides a client from listings; fails if the client
	// still has open invoices
	ArchiveClient(ctx context.Context, id int64) error

	// UnarchiveClient restores an archived client
	UnarchiveClient(ctx context.Context, id int64) error

	// GetClient retrieves a client by ID
	GetClient(ctx context.Context, id int64) (*domain.Client, error)

	// GetClientByName retrieves a client by exact name
	GetClientByName(ctx context.Context, name string) (*domain.Client, error)

	// ListClients lists clients, optionally including archived ones
	ListClients(ctx context.Context, includeArchived bool) ([]domain.Client, error)
}

type clientService struct {
	clientRepo  repository.ClientRepository
	invoiceRepo repository.InvoiceRepository
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *clientService) CreateClient(ctx context.Context, name, email, company string) (*domain.Client, error) {
	client := domain.NewClient(name, email)
	client.Company = company

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now()
	return s.clientRepo.Update(ctx, client)
}

func (s *clientService) ArchiveClient(ctx context.Context, id int64) error {
	invoices, err := s.invoiceRepo.List(ctx, &id, nil)
	if err != nil {
		return err
	}

	for _, inv := range invoices {
		if !inv.IsClosed() {
			return ErrClientHasOpenInvoices
		}
	}

	return s.clientRepo.Archive(ctx, id)
}

func (s *clientService) UnarchiveClient(ctx context.Context, id int64) error {
	return s.clientRepo.Unarchive(ctx, id)
}

func (s *clientService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) GetClientByName(ctx context.Context, name string) (*domain.Client, error) {
	return s.clientRepo.GetByName(ctx, name)
}

func (s *clientService) ListClients(ctx context.Context, includeArchived bool) ([]domain.Client, error) {
	return s.clientRepo.List(ctx, includeArchived)
}
