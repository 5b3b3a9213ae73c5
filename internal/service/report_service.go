package service

import (
	"context"
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/invoice"
	"github.com/andy/invoicekit/internal/repository"
)

// ClientReport summarises one client's invoicing history
type ClientReport struct {
	ClientID    int64
	Invoices    int
	Billed      float64
	Paid        float64
	Outstanding float64
}

// ReportService provides aggregations over invoices and payments
type ReportService interface {
	// GetStatistics computes dashboard metrics across all invoices
	GetStatistics(ctx context.Context) (invoice.Statistics, error)

	// GetPeriodSummary buckets invoices by calendar period keyed by the
	// invoice date
	GetPeriodSummary(ctx context.Context, period dates.Period) (map[string]invoice.PeriodBucket, error)

	// GetOverdue returns all invoices past their due date and unpaid
	GetOverdue(ctx context.Context) ([]domain.Invoice, error)

	// GetDueSoon returns sent invoices due within the given number of days
	GetDueSoon(ctx context.Context, days int) ([]domain.Invoice, error)

	// GetClientReport summarises invoicing for one client
	GetClientReport(ctx context.Context, clientID int64) (*ClientReport, error)

	// GetRevenueByMonth reports paid revenue per month of the given year
	GetRevenueByMonth(ctx context.Context, year int) (map[time.Month]float64, error)

	// SearchInvoices matches a free-text term against invoices and their
	// clients
	SearchInvoices(ctx context.Context, term string) ([]domain.Invoice, error)
}

type reportService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	paymentRepo repository.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
) ReportService {
	return &reportService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *reportService) GetStatistics(ctx context.Context) (invoice.Statistics, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return invoice.Statistics{}, err
	}

	payments, err := s.paymentRepo.List(ctx, nil)
	if err != nil {
		return invoice.Statistics{}, err
	}

	return invoice.CalculateStatistics(invoices, payments, time.Now()), nil
}

func (s *reportService) GetPeriodSummary(ctx context.Context, period dates.Period) (map[string]invoice.PeriodBucket, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	return invoice.SummaryByPeriod(invoices, period), nil
}

func (s *reportService) GetOverdue(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	return invoice.Overdue(invoices, time.Now()), nil
}

func (s *reportService) GetDueSoon(ctx context.Context, days int) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = invoice.DefaultDueSoonDays
	}

	return invoice.DueSoon(invoices, days, time.Now()), nil
}

func (s *reportService) GetClientReport(ctx context.Context, clientID int64) (*ClientReport, error) {
	invoices, err := s.invoiceRepo.List(ctx, &clientID, nil)
	if err != nil {
		return nil, err
	}

	report := &ClientReport{ClientID: clientID, Invoices: len(invoices)}

	for _, inv := range invoices {
		if inv.Status == domain.InvoiceStatusCancelled {
			continue
		}
		report.Billed += inv.Total

		id := inv.ID
		payments, err := s.paymentRepo.List(ctx, &id)
		if err != nil {
			return nil, err
		}

		report.Paid += invoice.PaidTotal(inv, payments)
		report.Outstanding += invoice.OutstandingAmount(inv, payments)
	}

	return report, nil
}

func (s *reportService) GetRevenueByMonth(ctx context.Context, year int) (map[time.Month]float64, error) {
	paidStatus := domain.InvoiceStatusPaid
	invoices, err := s.invoiceRepo.List(ctx, nil, &paidStatus)
	if err != nil {
		return nil, err
	}

	revenue := make(map[time.Month]float64)
	for m := time.January; m <= time.December; m++ {
		revenue[m] = 0
	}

	for _, inv := range invoices {
		// Prefer the recorded payment time over the row's last update
		paidDate := inv.UpdatedAt
		if inv.PaidAt != nil {
			paidDate = *inv.PaidAt
		}

		if paidDate.Year() == year {
			revenue[paidDate.Month()] += inv.Total
		}
	}

	return revenue, nil
}

func (s *reportService) SearchInvoices(ctx context.Context, term string) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	return invoice.Search(invoices, clients, term), nil
}
