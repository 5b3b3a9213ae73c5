package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/invoicekit/internal/domain"
)

func newTestReportService() (*reportService, *mockInvoiceRepo, *mockPaymentRepo) {
	invRepo := newMockInvoiceRepo()
	payRepo := &mockPaymentRepo{}
	svc := &reportService{
		invoiceRepo: invRepo,
		clientRepo:  newMockClientRepo(),
		paymentRepo: payRepo,
	}
	return svc, invRepo, payRepo
}

func seedInvoice(t *testing.T, repo *mockInvoiceRepo, clientID int64, number string, total float64, status domain.InvoiceStatus) *domain.Invoice {
	t.Helper()
	inv := &domain.Invoice{
		ClientID:      clientID,
		InvoiceNumber: number,
		Date:          time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:      total,
		Total:         total,
		Status:        status,
		UpdatedAt:     time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), inv); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return inv
}

func TestGetClientReport(t *testing.T) {
	svc, invRepo, payRepo := newTestReportService()
	ctx := context.Background()

	paid := seedInvoice(t, invRepo, 1, "INV-25-001", 1000, domain.InvoiceStatusPaid)
	seedInvoice(t, invRepo, 1, "INV-25-002", 500, domain.InvoiceStatusSent)
	seedInvoice(t, invRepo, 1, "INV-25-003", 9999, domain.InvoiceStatusCancelled)
	seedInvoice(t, invRepo, 2, "INV-25-004", 7777, domain.InvoiceStatusSent)

	payRepo.Create(ctx, domain.NewPayment(paid.ID, 1000,
		time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), domain.PaymentMethodBankTransfer))

	report, err := svc.GetClientReport(ctx, 1)
	if err != nil {
		t.Fatalf("GetClientReport: %v", err)
	}

	if report.Invoices != 3 {
		t.Errorf("invoices = %d, want 3", report.Invoices)
	}
	// Cancelled invoices count but contribute nothing to the money columns.
	if report.Billed != 1500 {
		t.Errorf("billed = %v, want 1500", report.Billed)
	}
	if report.Paid != 1000 {
		t.Errorf("paid = %v, want 1000", report.Paid)
	}
	if report.Outstanding != 500 {
		t.Errorf("outstanding = %v, want 500", report.Outstanding)
	}
}

func TestGetRevenueByMonth(t *testing.T) {
	svc, invRepo, _ := newTestReportService()
	ctx := context.Background()

	marchPaid := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	a := seedInvoice(t, invRepo, 1, "INV-25-001", 1000, domain.InvoiceStatusPaid)
	a.PaidAt = &marchPaid
	invRepo.Update(ctx, a)

	// No PaidAt: falls back to the row's update time (June).
	seedInvoice(t, invRepo, 1, "INV-25-002", 250, domain.InvoiceStatusPaid)

	// Wrong year, must not count.
	lastYear := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	c := seedInvoice(t, invRepo, 1, "INV-24-001", 600, domain.InvoiceStatusPaid)
	c.PaidAt = &lastYear
	invRepo.Update(ctx, c)

	// Unpaid, must not count at all.
	seedInvoice(t, invRepo, 1, "INV-25-003", 400, domain.InvoiceStatusSent)

	revenue, err := svc.GetRevenueByMonth(ctx, 2025)
	if err != nil {
		t.Fatalf("GetRevenueByMonth: %v", err)
	}

	if len(revenue) != 12 {
		t.Errorf("expected all 12 months present, got %d", len(revenue))
	}
	if revenue[time.March] != 1000 {
		t.Errorf("March = %v, want 1000", revenue[time.March])
	}
	if revenue[time.June] != 250 {
		t.Errorf("June = %v, want 250", revenue[time.June])
	}
	if revenue[time.January] != 0 {
		t.Errorf("January = %v, want 0", revenue[time.January])
	}
}

func TestGetDueSoon_DefaultWindow(t *testing.T) {
	svc, invRepo, _ := newTestReportService()
	ctx := context.Background()

	soon := seedInvoice(t, invRepo, 1, "INV-25-001", 100, domain.InvoiceStatusSent)
	due := time.Now().AddDate(0, 0, 3)
	soon.DueDate = due
	invRepo.Update(ctx, soon)

	far := seedInvoice(t, invRepo, 1, "INV-25-002", 100, domain.InvoiceStatusSent)
	far.DueDate = time.Now().AddDate(0, 0, 60)
	invRepo.Update(ctx, far)

	got, err := svc.GetDueSoon(ctx, 0)
	if err != nil {
		t.Fatalf("GetDueSoon: %v", err)
	}
	if len(got) != 1 || got[0].InvoiceNumber != "INV-25-001" {
		t.Errorf("got %d invoices, want just the one due in 3 days", len(got))
	}
}

func TestSearchInvoices_MatchesClientName(t *testing.T) {
	svc, invRepo, _ := newTestReportService()
	ctx := context.Background()

	seedInvoice(t, invRepo, 1, "INV-25-001", 100, domain.InvoiceStatusSent)
	seedInvoice(t, invRepo, 2, "INV-25-002", 100, domain.InvoiceStatusSent)

	// Client 1 is "ACME" in the mock roster.
	got, err := svc.SearchInvoices(ctx, "acme")
	if err != nil {
		t.Fatalf("SearchInvoices: %v", err)
	}
	if len(got) != 1 || got[0].InvoiceNumber != "INV-25-001" {
		t.Errorf("expected only the ACME invoice, got %d", len(got))
	}
}

func TestGetStatistics_Counts(t *testing.T) {
	svc, invRepo, _ := newTestReportService()
	ctx := context.Background()

	seedInvoice(t, invRepo, 1, "INV-25-001", 1000, domain.InvoiceStatusPaid)
	seedInvoice(t, invRepo, 1, "INV-25-002", 500, domain.InvoiceStatusSent)
	seedInvoice(t, invRepo, 1, "INV-25-003", 200, domain.InvoiceStatusDraft)

	stats, err := svc.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalInvoices != 3 {
		t.Errorf("total invoices = %d", stats.TotalInvoices)
	}
	if stats.PaidInvoices != 1 || stats.DraftInvoices != 1 {
		t.Errorf("paid/draft = %d/%d", stats.PaidInvoices, stats.DraftInvoices)
	}
	if stats.TotalRevenue != 1700 {
		t.Errorf("revenue = %v", stats.TotalRevenue)
	}
}
