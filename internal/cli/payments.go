package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/email"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Record and list payments",
	Long:  `Record payments against invoices. Once payments cover an invoice total, the invoice becomes paid.`,
}

var paymentsAddCmd = &cobra.Command{
	Use:   "add [invoice_id] [amount]",
	Short: "Record a payment against an invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}

		dateStr, _ := cmd.Flags().GetString("date")
		date, err := parseDateFlag(dateStr)
		if err != nil {
			return err
		}

		methodStr, _ := cmd.Flags().GetString("method")
		method, err := domain.ParsePaymentMethod(methodStr)
		if err != nil {
			return err
		}

		reference, _ := cmd.Flags().GetString("reference")

		payment, err := appInstance.InvoiceService.RecordPayment(ctx, invoiceID, amount, date, method, reference)
		if err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		fmt.Printf("✓ Payment recorded: %s on %s\n", formatMoney(payment.Amount), formatDate(payment.Date))

		inv, err := appInstance.InvoiceService.GetInvoice(ctx, invoiceID)
		if err == nil {
			fmt.Printf("  Invoice %s is now %s\n", inv.InvoiceNumber, inv.Status)
		}

		if thankYou, _ := cmd.Flags().GetBool("thank-you"); thankYou && inv != nil {
			client, err := appInstance.ClientService.GetClient(ctx, inv.ClientID)
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}
			biz := businessFromConfig()
			subject := email.ThankYouSubject(inv.InvoiceNumber, biz)
			body := email.ThankYouBody(*inv, *client, payment.Amount, biz, timeNow())
			fmt.Printf("\nSubject: %s\n\n%s\n", subject, body)
		}

		return nil
	},
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var invoiceID *int64
		if cmd.Flags().Changed("invoice") {
			id, _ := cmd.Flags().GetInt64("invoice")
			invoiceID = &id
		}

		payments, err := appInstance.PaymentRepo.List(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}

		if len(payments) == 0 {
			fmt.Println("No payments found")
			return nil
		}

		fmt.Printf("%-5s %-10s %-12s %-14s %-15s %s\n", "ID", "Invoice", "Date", "Amount", "Method", "Reference")
		fmt.Println(strings.Repeat("-", 75))

		total := 0.0
		for _, p := range payments {
			fmt.Printf("%-5d %-10d %-12s %-14s %-15s %s\n",
				p.ID,
				p.InvoiceID,
				formatDate(p.Date),
				formatMoney(p.Amount),
				p.Method,
				p.Reference,
			)
			total += p.Amount
		}

		fmt.Printf("\nTotal: %d payment(s), %s\n", len(payments), formatMoney(total))
		return nil
	},
}

func init() {
	paymentsCmd.AddCommand(paymentsAddCmd)
	paymentsCmd.AddCommand(paymentsListCmd)

	// Add flags
	paymentsAddCmd.Flags().String("date", "", "Payment date (YYYY-MM-DD, defaults to today)")
	paymentsAddCmd.Flags().String("method", "bank_transfer", "Payment method (cash, check, bank_transfer, credit_card, paypal, other)")
	paymentsAddCmd.Flags().String("reference", "", "Payment reference (check number, transaction ID)")
	paymentsAddCmd.Flags().Bool("thank-you", false, "Print a payment confirmation email after recording")

	// List flags
	paymentsListCmd.Flags().Int64("invoice", 0, "Filter by invoice ID")
}
