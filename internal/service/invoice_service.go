package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andy/invoicekit/internal/config"
	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/invoice"
	"github.com/andy/invoicekit/internal/repository"
)

var (
	ErrInvoiceNotEditable = errors.New("invoice items can only be edited on a draft")
	ErrItemNotFound       = errors.New("invoice item not found")
	ErrInvoiceClosed      = errors.New("invoice is closed")
)

// ValidationFailedError carries the full validation result so callers can
// show every field error, not just the first.
type ValidationFailedError struct {
	Result invoice.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "invoice validation failed"
	}
	first := e.Result.Errors[0]
	return fmt.Sprintf("invoice validation failed: %s: %s", first.Field, first.Message)
}

// InvoiceService manages the invoice lifecycle: drafting, item edits,
// sending, payments, and status upkeep.
type InvoiceService interface {
	// CreateDraft creates a new draft invoice with an auto-generated number
	CreateDraft(ctx context.Context, clientID int64, date, dueDate time.Time, items []domain.InvoiceItem, notes string) (*domain.Invoice, error)

	// AddItem appends a line item and recalculates totals
	AddItem(ctx context.Context, invoiceID int64, description string, quantity, rate float64) (*domain.Invoice, error)

	// UpdateItem changes a line item's quantity and/or rate; nil leaves a field alone
	UpdateItem(ctx context.Context, invoiceID int64, itemID string, quantity, rate *float64) (*domain.Invoice, error)

	// RemoveItem deletes a line item and recalculates totals
	RemoveItem(ctx context.Context, invoiceID int64, itemID string) (*domain.Invoice, error)

	// SetDiscount applies a flat or percentage discount and recalculates totals
	SetDiscount(ctx context.Context, invoiceID int64, discount float64, isPercent bool) (*domain.Invoice, error)

	// MarkSent transitions a draft invoice to sent
	MarkSent(ctx context.Context, invoiceID int64) error

	// Cancel cancels an invoice that is not paid or already cancelled
	Cancel(ctx context.Context, invoiceID int64) error

	// RecordPayment records a payment and re-derives the invoice status
	RecordPayment(ctx context.Context, invoiceID int64, amount float64, date time.Time, method domain.PaymentMethod, reference string) (*domain.Payment, error)

	// RefreshStatuses re-derives every invoice's status and returns how
	// many rows changed
	RefreshStatuses(ctx context.Context) (int, error)

	// DuplicateInvoice copies an invoice into a fresh draft with a new number
	DuplicateInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)

	// ValidateInvoice runs the full validation rules against a stored invoice
	ValidateInvoice(ctx context.Context, invoiceID int64) (invoice.ValidationResult, error)

	// GetInvoice retrieves an invoice by ID
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)

	// GetByNumber retrieves an invoice by its invoice number
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)

	// ListInvoices lists invoices with optional filters
	ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]domain.Invoice, error)

	// DeleteInvoice removes a draft invoice
	DeleteInvoice(ctx context.Context, invoiceID int64) error
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	paymentRepo repository.PaymentRepository
	cfg         config.InvoiceConfig
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
	cfg config.InvoiceConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		cfg:         cfg,
	}
}

func (s *invoiceService) numberConfig() invoice.NumberConfig {
	return invoice.NumberConfig{
		Pattern:   invoice.Pattern(s.cfg.NumberPattern),
		Prefix:    s.cfg.NumberPrefix,
		Suffix:    s.cfg.NumberSuffix,
		Digits:    s.cfg.NumberDigits,
		Separator: s.cfg.NumberSeparator,
	}
}

func (s *invoiceService) statusPolicy() invoice.StatusPolicy {
	return invoice.StatusPolicy{StickyPaid: s.cfg.StickyPaid}
}

func (s *invoiceService) CreateDraft(
	ctx context.Context,
	clientID int64,
	date, dueDate time.Time,
	items []domain.InvoiceItem,
	notes string,
) (*domain.Invoice, error) {
	clients, err := s.clientRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	existing, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if date.IsZero() {
		date = dates.Day(now)
	}
	if dueDate.IsZero() {
		dueDate = dates.AddDays(date, s.cfg.DefaultDueDays)
	}

	number := invoice.GenerateNumber(existing, s.numberConfig(), now)

	inv := domain.NewInvoice(number, clientID, date, dueDate)
	inv.Notes = notes
	for _, item := range items {
		inv.Items = append(inv.Items, item)
	}
	s.applyTotals(inv)

	result := invoice.Validate(*inv, clients, existing, now)
	if !result.IsValid {
		return nil, &ValidationFailedError{Result: result}
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *invoiceService) AddItem(ctx context.Context, invoiceID int64, description string, quantity, rate float64) (*domain.Invoice, error) {
	inv, err := s.editableInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item := domain.NewInvoiceItem(description, quantity, rate)
	inv.Items = append(inv.Items, item)

	return s.saveWithTotals(ctx, inv)
}

func (s *invoiceService) UpdateItem(ctx context.Context, invoiceID int64, itemID string, quantity, rate *float64) (*domain.Invoice, error) {
	inv, err := s.editableInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item := inv.ItemByID(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	if quantity != nil {
		item.SetQuantity(*quantity)
	}
	if rate != nil {
		item.SetRate(*rate)
	}

	return s.saveWithTotals(ctx, inv)
}

func (s *invoiceService) RemoveItem(ctx context.Context, invoiceID int64, itemID string) (*domain.Invoice, error) {
	inv, err := s.editableInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	found := false
	items := inv.Items[:0]
	for _, item := range inv.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	inv.Items = items

	return s.saveWithTotals(ctx, inv)
}

func (s *invoiceService) SetDiscount(ctx context.Context, invoiceID int64, discount float64, isPercent bool) (*domain.Invoice, error) {
	inv, err := s.editableInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	totals := invoice.CalculateTotalsWithDiscount(inv.Items, s.cfg.DefaultTaxRate, discount, isPercent)
	inv.Subtotal = totals.Subtotal
	inv.Tax = totals.Tax
	inv.Discount = totals.Discount
	inv.Total = totals.Total
	inv.UpdatedAt = time.Now()

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) MarkSent(ctx context.Context, invoiceID int64) error {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if err := inv.Send(time.Now()); err != nil {
		return err
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	log.Debug().Int64("invoice", invoiceID).Str("number", inv.InvoiceNumber).Msg("invoice sent")
	return nil
}

func (s *invoiceService) Cancel(ctx context.Context, invoiceID int64) error {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if err := inv.Cancel(time.Now()); err != nil {
		return err
	}

	return s.invoiceRepo.Update(ctx, inv)
}

func (s *invoiceService) RecordPayment(
	ctx context.Context,
	invoiceID int64,
	amount float64,
	date time.Time,
	method domain.PaymentMethod,
	reference string,
) (*domain.Payment, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: cannot record payment on a cancelled invoice", ErrInvoiceClosed)
	}
	if inv.Status == domain.InvoiceStatusDraft {
		return nil, errors.New("cannot record payment on a draft invoice - send it first")
	}

	now := time.Now()
	if date.IsZero() {
		date = dates.Day(now)
	}

	payment := domain.NewPayment(invoiceID, amount, date, method)
	payment.Reference = reference

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.refreshOne(ctx, inv, now); err != nil {
		return nil, err
	}

	log.Debug().Int64("invoice", invoiceID).Float64("amount", amount).Str("method", string(method)).Msg("payment recorded")
	return payment, nil
}

func (s *invoiceService) RefreshStatuses(ctx context.Context) (int, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return 0, err
	}

	payments, err := s.paymentRepo.List(ctx, nil)
	if err != nil {
		return 0, err
	}

	byInvoice := make(map[int64][]domain.Payment)
	for _, p := range payments {
		byInvoice[p.InvoiceID] = append(byInvoice[p.InvoiceID], p)
	}

	now := time.Now()
	changed := 0
	for i := range invoices {
		inv := &invoices[i]
		derived := invoice.DeriveStatus(*inv, byInvoice[inv.ID], now, s.statusPolicy())
		if derived == inv.Status {
			continue
		}

		inv.Status = derived
		if derived == domain.InvoiceStatusPaid && inv.PaidAt == nil {
			paidAt := now
			inv.PaidAt = &paidAt
		}
		inv.UpdatedAt = now

		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return changed, err
		}
		changed++
	}

	return changed, nil
}

func (s *invoiceService) DuplicateInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	existing, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	dup := invoice.Duplicate(*inv, existing, s.numberConfig(), time.Now())
	if err := s.invoiceRepo.Create(ctx, &dup); err != nil {
		return nil, err
	}

	return &dup, nil
}

func (s *invoiceService) ValidateInvoice(ctx context.Context, invoiceID int64) (invoice.ValidationResult, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return invoice.ValidationResult{}, err
	}

	clients, err := s.clientRepo.List(ctx, true)
	if err != nil {
		return invoice.ValidationResult{}, err
	}

	existing, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return invoice.ValidationResult{}, err
	}

	return invoice.Validate(*inv, clients, existing, time.Now()), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByNumber(ctx, number)
}

func (s *invoiceService) ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	return s.invoiceRepo.List(ctx, clientID, status)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status != domain.InvoiceStatusDraft {
		return errors.New("only draft invoices can be deleted - cancel instead")
	}

	return s.invoiceRepo.Delete(ctx, invoiceID)
}

// editableInvoice loads an invoice and checks whether item edits are allowed
// under the current configuration.
func (s *invoiceService) editableInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.IsClosed() {
		return nil, fmt.Errorf("%w: invoice %s", ErrInvoiceClosed, inv.InvoiceNumber)
	}
	if !inv.CanEdit() && !s.cfg.AllowNonDraftItemEdits {
		return nil, ErrInvoiceNotEditable
	}

	return inv, nil
}

func (s *invoiceService) applyTotals(inv *domain.Invoice) {
	totals := invoice.CalculateTotalsWithDiscount(inv.Items, s.cfg.DefaultTaxRate, inv.Discount, false)
	inv.Subtotal = totals.Subtotal
	inv.Tax = totals.Tax
	inv.Discount = totals.Discount
	inv.Total = totals.Total
}

func (s *invoiceService) saveWithTotals(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	s.applyTotals(inv)
	inv.UpdatedAt = time.Now()

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) refreshOne(ctx context.Context, inv *domain.Invoice, now time.Time) error {
	id := inv.ID
	payments, err := s.paymentRepo.List(ctx, &id)
	if err != nil {
		return err
	}

	derived := invoice.DeriveStatus(*inv, payments, now, s.statusPolicy())
	if derived == inv.Status {
		return nil
	}

	inv.Status = derived
	if derived == domain.InvoiceStatusPaid && inv.PaidAt == nil {
		paidAt := now
		inv.PaidAt = &paidAt
	}
	inv.UpdatedAt = now

	return s.invoiceRepo.Update(ctx, inv)
}
