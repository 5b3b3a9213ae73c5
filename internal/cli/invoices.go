package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/invoicekit/internal/domain"
	"github.com/andy/invoicekit/internal/email"
	"github.com/andy/invoicekit/internal/invoice"
	"github.com/andy/invoicekit/internal/service"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `Create, list, edit, and manage invoices through their lifecycle.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Refresh so overdue invoices show up as overdue
		if err := appInstance.RefreshStatuses(ctx); err != nil {
			return fmt.Errorf("failed to refresh statuses: %w", err)
		}

		// Parse filters
		var clientID *int64
		if cmd.Flags().Changed("client") {
			id, _ := cmd.Flags().GetInt64("client")
			clientID = &id
		}

		var status *domain.InvoiceStatus
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			s, err := domain.ParseInvoiceStatus(statusStr)
			if err != nil {
				return err
			}
			status = &s
		}

		invoices, err := appInstance.InvoiceService.ListInvoices(ctx, clientID, status)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		// Print table header
		fmt.Printf("%-5s %-15s %-25s %-12s %-12s %-14s %-10s\n",
			"ID", "Number", "Client", "Date", "Due", "Total", "Status")
		fmt.Println(strings.Repeat("-", 98))

		// Print invoices
		for _, inv := range invoices {
			client, _ := appInstance.ClientService.GetClient(ctx, inv.ClientID)
			clientName := fmt.Sprintf("Client #%d", inv.ClientID)
			if client != nil {
				clientName = client.Name
			}

			fmt.Printf("%-5d %-15s %-25s %-12s %-12s %-14s %-10s\n",
				inv.ID,
				inv.InvoiceNumber,
				truncate(clientName, 25),
				formatDate(inv.Date),
				formatDate(inv.DueDate),
				formatMoney(inv.Total),
				inv.Status,
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create [client_id_or_name]",
	Short: "Create a new draft invoice",
	Long: `Create a new draft invoice for a client.

Line items are given with repeated --item flags in the form
"description:quantity:rate", for example:

  invoicekit invoices create acme --item "Design work:40:100" --item "Consulting:20:80"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Resolve client
		clientID, err := resolveClientID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve client: %w", err)
		}

		// Parse dates
		dateStr, _ := cmd.Flags().GetString("date")
		dueStr, _ := cmd.Flags().GetString("due")

		date, err := parseDateFlag(dateStr)
		if err != nil {
			return err
		}
		due, err := parseDateFlag(dueStr)
		if err != nil {
			return err
		}

		// Parse line items
		itemSpecs, _ := cmd.Flags().GetStringArray("item")
		items := make([]domain.InvoiceItem, 0, len(itemSpecs))
		for _, spec := range itemSpecs {
			item, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		notes, _ := cmd.Flags().GetString("notes")

		inv, err := appInstance.InvoiceService.CreateDraft(ctx, clientID, date, due, items, notes)
		if err != nil {
			var vErr *service.ValidationFailedError
			if errors.As(err, &vErr) {
				printValidationResult(vErr.Result)
				return errors.New("invoice not created")
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		fmt.Printf("✓ Draft invoice created: %s (ID: %d)\n", inv.InvoiceNumber, inv.ID)
		fmt.Printf("  Date: %s  Due: %s\n", formatDate(inv.Date), formatDate(inv.DueDate))
		printTotals(inv)

		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id_or_number]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, err := resolveInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		client, _ := appInstance.ClientService.GetClient(ctx, inv.ClientID)
		clientName := fmt.Sprintf("Client #%d", inv.ClientID)
		if client != nil {
			clientName = client.Name
		}

		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("Invoice: %s\n", inv.InvoiceNumber)
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("Client: %s\n", clientName)
		fmt.Printf("Date:   %s\n", formatDate(inv.Date))
		fmt.Printf("Due:    %s\n", formatDate(inv.DueDate))
		fmt.Printf("Status: %s\n", inv.Status)
		if inv.Notes != "" {
			fmt.Printf("Notes:  %s\n", inv.Notes)
		}
		fmt.Println()

		if len(inv.Items) > 0 {
			fmt.Println("Items:")
			fmt.Println(strings.Repeat("-", 80))
			fmt.Printf("%-38s %-42s %8s %10s %12s\n", "ID", "Description", "Qty", "Rate", "Amount")
			fmt.Println(strings.Repeat("-", 80))

			for _, item := range inv.Items {
				fmt.Printf("%-38s %-42s %8.2f %10s %12s\n",
					item.ID,
					truncate(item.Description, 42),
					item.Quantity,
					formatMoney(item.Rate),
					formatMoney(item.Amount),
				)
			}
			fmt.Println(strings.Repeat("-", 80))
		}

		// Payments recorded against this invoice
		id := inv.ID
		payments, err := appInstance.PaymentRepo.List(ctx, &id)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		if len(payments) > 0 {
			fmt.Println("\nPayments:")
			for _, p := range payments {
				fmt.Printf("  %s  %-14s %s", formatDate(p.Date), formatMoney(p.Amount), p.Method)
				if p.Reference != "" {
					fmt.Printf(" (%s)", p.Reference)
				}
				fmt.Println()
			}
		}

		fmt.Println()
		printTotals(inv)
		fmt.Println(strings.Repeat("=", 80))

		return nil
	},
}

var invoicesAddItemCmd = &cobra.Command{
	Use:   "add-item [invoice_id] [description]",
	Short: "Add a line item to a draft invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		quantity, _ := cmd.Flags().GetFloat64("qty")
		rate, _ := cmd.Flags().GetFloat64("rate")

		inv, err := appInstance.InvoiceService.AddItem(ctx, invoiceID, args[1], quantity, rate)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		fmt.Printf("✓ Item added to %s\n", inv.InvoiceNumber)
		printTotals(inv)
		return nil
	},
}

var invoicesUpdateItemCmd = &cobra.Command{
	Use:   "update-item [invoice_id] [item_id]",
	Short: "Change a line item's quantity or rate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		var quantity, rate *float64
		if cmd.Flags().Changed("qty") {
			q, _ := cmd.Flags().GetFloat64("qty")
			quantity = &q
		}
		if cmd.Flags().Changed("rate") {
			r, _ := cmd.Flags().GetFloat64("rate")
			rate = &r
		}
		if quantity == nil && rate == nil {
			return errors.New("nothing to update: pass --qty and/or --rate")
		}

		inv, err := appInstance.InvoiceService.UpdateItem(ctx, invoiceID, args[1], quantity, rate)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		fmt.Printf("✓ Item updated on %s\n", inv.InvoiceNumber)
		printTotals(inv)
		return nil
	},
}

var invoicesRemoveItemCmd = &cobra.Command{
	Use:   "remove-item [invoice_id] [item_id]",
	Short: "Remove a line item from a draft invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		inv, err := appInstance.InvoiceService.RemoveItem(ctx, invoiceID, args[1])
		if err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}

		fmt.Printf("✓ Item removed from %s\n", inv.InvoiceNumber)
		printTotals(inv)
		return nil
	},
}

var invoicesDiscountCmd = &cobra.Command{
	Use:   "discount [invoice_id] [amount]",
	Short: "Apply a discount to a draft invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoiceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid discount amount: %w", err)
		}

		isPercent, _ := cmd.Flags().GetBool("percent")

		inv, err := appInstance.InvoiceService.SetDiscount(ctx, invoiceID, amount, isPercent)
		if err != nil {
			return fmt.Errorf("failed to apply discount: %w", err)
		}

		fmt.Printf("✓ Discount applied to %s\n", inv.InvoiceNumber)
		printTotals(inv)
		return nil
	},
}

var invoicesSendCmd = &cobra.Command{
	Use:   "send [id]",
	Short: "Mark a draft invoice as sent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		if err := appInstance.InvoiceService.MarkSent(ctx, id); err != nil {
			return fmt.Errorf("failed to mark invoice as sent: %w", err)
		}

		fmt.Printf("✓ Invoice #%d marked as sent\n", id)
		return nil
	},
}

var invoicesCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		if err := appInstance.InvoiceService.Cancel(ctx, id); err != nil {
			return fmt.Errorf("failed to cancel invoice: %w", err)
		}

		fmt.Printf("✓ Invoice #%d cancelled\n", id)
		return nil
	},
}

var invoicesDuplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Copy an invoice into a new draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		dup, err := appInstance.InvoiceService.DuplicateInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to duplicate invoice: %w", err)
		}

		fmt.Printf("✓ Draft invoice created: %s (ID: %d)\n", dup.InvoiceNumber, dup.ID)
		printTotals(dup)
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a draft invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		if err := appInstance.InvoiceService.DeleteInvoice(ctx, id); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Printf("✓ Invoice #%d deleted\n", id)
		return nil
	},
}

var invoicesValidateCmd = &cobra.Command{
	Use:   "validate [id]",
	Short: "Run validation rules against an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice ID: %w", err)
		}

		result, err := appInstance.InvoiceService.ValidateInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to validate invoice: %w", err)
		}

		if result.IsValid && len(result.Warnings) == 0 {
			fmt.Println("✓ Invoice is valid")
			return nil
		}

		printValidationResult(result)
		return nil
	},
}

var invoicesEmailCmd = &cobra.Command{
	Use:   "email [id_or_number]",
	Short: "Print invoice or reminder email text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, err := resolveInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		client, err := appInstance.ClientService.GetClient(ctx, inv.ClientID)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		biz := businessFromConfig()
		reminder, _ := cmd.Flags().GetBool("reminder")

		var subject, body string
		if reminder {
			subject = email.ReminderSubject(inv.InvoiceNumber, biz)
			body = email.ReminderBody(*inv, *client, biz, timeNow())
		} else {
			subject = email.InvoiceSubject(inv.InvoiceNumber, biz)
			body = email.InvoiceBody(*inv, *client, biz)
		}

		if mailto, _ := cmd.Flags().GetBool("mailto"); mailto {
			if err := email.ValidateAddress(client.Email); err != nil {
				return fmt.Errorf("client has no usable email address: %w", err)
			}
			fmt.Println(email.MailtoURL(client.Email, subject, body))
			return nil
		}

		fmt.Printf("Subject: %s\n\n%s\n", subject, body)
		return nil
	},
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesAddItemCmd)
	invoicesCmd.AddCommand(invoicesUpdateItemCmd)
	invoicesCmd.AddCommand(invoicesRemoveItemCmd)
	invoicesCmd.AddCommand(invoicesDiscountCmd)
	invoicesCmd.AddCommand(invoicesSendCmd)
	invoicesCmd.AddCommand(invoicesCancelCmd)
	invoicesCmd.AddCommand(invoicesDuplicateCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesValidateCmd)
	invoicesCmd.AddCommand(invoicesEmailCmd)

	// List flags
	invoicesListCmd.Flags().Int64("client", 0, "Filter by client ID")
	invoicesListCmd.Flags().String("status", "", "Filter by status (draft, sent, paid, overdue, cancelled)")

	// Create flags
	invoicesCreateCmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD, defaults to today)")
	invoicesCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD, defaults to configured terms)")
	invoicesCreateCmd.Flags().StringArray("item", nil, `Line item as "description:quantity:rate" (repeatable)`)
	invoicesCreateCmd.Flags().String("notes", "", "Invoice notes")

	// Item flags
	invoicesAddItemCmd.Flags().Float64("qty", 1, "Quantity")
	invoicesAddItemCmd.Flags().Float64("rate", 0, "Unit rate (required)")
	invoicesAddItemCmd.MarkFlagRequired("rate")
	invoicesUpdateItemCmd.Flags().Float64("qty", 0, "New quantity")
	invoicesUpdateItemCmd.Flags().Float64("rate", 0, "New rate")

	// Discount flags
	invoicesDiscountCmd.Flags().Bool("percent", false, "Treat the amount as a percentage of the subtotal")

	// Email flags
	invoicesEmailCmd.Flags().Bool("reminder", false, "Generate an overdue reminder instead of the invoice email")
	invoicesEmailCmd.Flags().Bool("mailto", false, "Print a mailto: URL instead of the message text")
}

// parseItemSpec parses "description:quantity:rate". Descriptions may contain
// colons; the last two segments are numeric.
func parseItemSpec(spec string) (domain.InvoiceItem, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 {
		return domain.InvoiceItem{}, fmt.Errorf("invalid item %q: expected description:quantity:rate", spec)
	}

	rateStr := parts[len(parts)-1]
	qtyStr := parts[len(parts)-2]
	desc := strings.Join(parts[:len(parts)-2], ":")

	quantity, err := strconv.ParseFloat(qtyStr, 64)
	if err != nil {
		return domain.InvoiceItem{}, fmt.Errorf("invalid item quantity %q: %w", qtyStr, err)
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return domain.InvoiceItem{}, fmt.Errorf("invalid item rate %q: %w", rateStr, err)
	}

	return domain.NewInvoiceItem(desc, quantity, rate), nil
}

func printTotals(inv *domain.Invoice) {
	fmt.Printf("  Subtotal: %s\n", formatMoney(inv.Subtotal))
	if inv.Discount > 0 {
		fmt.Printf("  Discount: -%s\n", formatMoney(inv.Discount))
	}
	fmt.Printf("  Tax:      %s\n", formatMoney(inv.Tax))
	fmt.Printf("  Total:    %s\n", formatMoney(inv.Total))
}

func printValidationResult(result invoice.ValidationResult) {
	for _, e := range result.Errors {
		fmt.Printf("  ✗ %s: %s [%s]\n", e.Field, e.Message, e.Code)
	}
	for _, w := range result.Warnings {
		fmt.Printf("  ! %s\n", w)
	}
}
