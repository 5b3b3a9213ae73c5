package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/andy/invoicekit/internal/dates"
	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/email"
	"github.com/andy/invoicekit/internal/money"
)

// formatMoney renders an amount in the configured currency and locale
func formatMoney(amount float64) string {
	cfg := appInstance.Config.Invoice
	return money.Format(amount, cfg.Currency, cfg.Locale)
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty means unset
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dates.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return dates.Format(t, dates.StyleISO)
}

func timeNow() time.Time {
	return time.Now()
}

// resolveClientID accepts either a numeric client ID or an exact client name
func resolveClientID(ctx context.Context, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}

	client, err := appInstance.ClientService.GetClientByName(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("no client named %q: %w", arg, err)
	}
	return client.ID, nil
}

// resolveInvoice accepts either a numeric invoice ID or an invoice number
func resolveInvoice(ctx context.Context, arg string) (*domain.Invoice, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		inv, err := appInstance.InvoiceService.GetInvoice(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get invoice: %w", err)
		}
		return inv, nil
	}

	inv, err := appInstance.InvoiceService.GetByNumber(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("no invoice %q: %w", arg, err)
	}
	return inv, nil
}

func businessFromConfig() email.Business {
	biz := appInstance.Config.Business
	return email.Business{
		Name:    biz.Name,
		Email:   biz.Email,
		Phone:   biz.Phone,
		Address: biz.Address,
		Website: biz.Website,
		TaxID:   biz.TaxID,
	}
}
