package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestClientService() (*clientService, *mockInvoiceRepo) {
	invRepo := newMockInvoiceRepo()
	svc := &clientService{
		clientRepo:  newMockClientRepo(),
		invoiceRepo: invRepo,
	}
	return svc, invRepo
}

func seedSentInvoice(t *testing.T, invRepo *mockInvoiceRepo) {
	t.Helper()
	invSvc := &invoiceService{
		invoiceRepo: invRepo,
		clientRepo:  newMockClientRepo(),
		paymentRepo: &mockPaymentRepo{},
		cfg:         testConfig(),
	}
	createSentInvoice(t, invSvc, invRepo)
}

func TestCreateClient(t *testing.T) {
	svc, _ := newTestClientService()

	c, err := svc.CreateClient(context.Background(), " Widget Co ", "ap@widget.test", "Widget Inc")
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if c.Name != "Widget Co" {
		t.Errorf("name = %q", c.Name)
	}
	if c.Company != "Widget Inc" {
		t.Errorf("company = %q", c.Company)
	}
}

func TestArchiveClient_OpenInvoiceBlocks(t *testing.T) {
	svc, invRepo := newTestClientService()
	seedSentInvoice(t, invRepo)

	err := svc.ArchiveClient(context.Background(), 1)
	if !errors.Is(err, ErrClientHasOpenInvoices) {
		t.Fatalf("expected ErrClientHasOpenInvoices, got %v", err)
	}
}

func TestArchiveClient_ClosedInvoicesAllow(t *testing.T) {
	svc, invRepo := newTestClientService()
	seedSentInvoice(t, invRepo)

	now := time.Now()
	for _, inv := range invRepo.invoices {
		if err := inv.Cancel(now); err != nil {
			t.Fatalf("cancel: %v", err)
		}
	}

	if err := svc.ArchiveClient(context.Background(), 1); err != nil {
		t.Fatalf("ArchiveClient: %v", err)
	}
}

func TestArchiveClient_NoInvoices(t *testing.T) {
	svc, _ := newTestClientService()
	if err := svc.ArchiveClient(context.Background(), 1); err != nil {
		t.Fatalf("ArchiveClient: %v", err)
	}
}
