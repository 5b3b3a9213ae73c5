package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andy/invoicekit/internal/service"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and archive clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		includeArchived, _ := cmd.Flags().GetBool("archived")

		clients, err := appInstance.ClientService.ListClients(ctx, includeArchived)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		// Print table header
		fmt.Printf("%-5s %-30s %-25s %-20s %-10s\n", "ID", "Name", "Email", "Company", "Status")
		fmt.Println("----------------------------------------------------------------------------------------------")

		// Print clients
		for _, client := range clients {
			status := "Active"
			if client.IsArchived {
				status = "Archived"
			}
			fmt.Printf("%-5d %-30s %-25s %-20s %-10s\n",
				client.ID,
				truncate(client.Name, 30),
				truncate(client.Email, 25),
				truncate(client.Company, 20),
				status,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		email, _ := cmd.Flags().GetString("email")
		company, _ := cmd.Flags().GetString("company")
		address, _ := cmd.Flags().GetString("address")
		phone, _ := cmd.Flags().GetString("phone")
		notes, _ := cmd.Flags().GetString("notes")

		client, err := appInstance.ClientService.CreateClient(ctx, name, email, company)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		if address != "" || phone != "" || notes != "" {
			client.Address = address
			client.Phone = phone
			client.Notes = notes
			if err := appInstance.ClientService.UpdateClient(ctx, client); err != nil {
				return fmt.Errorf("failed to save client details: %w", err)
			}
		}

		fmt.Printf("✓ Client created: %s (ID: %d)\n", client.Name, client.ID)
		if client.Email != "" {
			fmt.Printf("  Email: %s\n", client.Email)
		}

		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.ClientService.GetClient(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		// Update fields if flags provided
		if cmd.Flags().Changed("name") {
			client.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("email") {
			client.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("company") {
			client.Company, _ = cmd.Flags().GetString("company")
		}
		if cmd.Flags().Changed("address") {
			client.Address, _ = cmd.Flags().GetString("address")
		}
		if cmd.Flags().Changed("phone") {
			client.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("notes") {
			client.Notes, _ = cmd.Flags().GetString("notes")
		}

		if err := appInstance.ClientService.UpdateClient(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a client and their invoicing summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.ClientService.GetClient(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		report, err := appInstance.ReportService.GetClientReport(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to build client report: %w", err)
		}

		fmt.Printf("Client: %s (ID: %d)\n", client.Name, client.ID)
		if client.Company != "" {
			fmt.Printf("  Company: %s\n", client.Company)
		}
		if client.Email != "" {
			fmt.Printf("  Email:   %s\n", client.Email)
		}
		if client.Phone != "" {
			fmt.Printf("  Phone:   %s\n", client.Phone)
		}
		if client.IsArchived {
			fmt.Println("  Status:  Archived")
		}
		fmt.Println()
		fmt.Printf("  Invoices:    %d\n", report.Invoices)
		fmt.Printf("  Billed:      %s\n", formatMoney(report.Billed))
		fmt.Printf("  Paid:        %s\n", formatMoney(report.Paid))
		fmt.Printf("  Outstanding: %s\n", formatMoney(report.Outstanding))

		return nil
	},
}

var clientsArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.ClientService.GetClient(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		if err := appInstance.ClientService.ArchiveClient(ctx, id); err != nil {
			if errors.Is(err, service.ErrClientHasOpenInvoices) {
				return fmt.Errorf("client %s still has open invoices - close them first", client.Name)
			}
			return fmt.Errorf("failed to archive client: %w", err)
		}

		fmt.Printf("✓ Client archived: %s\n", client.Name)
		return nil
	},
}

var clientsUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [id]",
	Short: "Unarchive a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		if err := appInstance.ClientService.UnarchiveClient(ctx, id); err != nil {
			return fmt.Errorf("failed to unarchive client: %w", err)
		}

		fmt.Printf("✓ Client unarchived (ID: %d)\n", id)
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsArchiveCmd)
	clientsCmd.AddCommand(clientsUnarchiveCmd)

	// List flags
	clientsListCmd.Flags().Bool("archived", false, "Include archived clients")

	// Add flags
	clientsAddCmd.Flags().String("email", "", "Client email")
	clientsAddCmd.Flags().String("company", "", "Company name")
	clientsAddCmd.Flags().String("address", "", "Billing address")
	clientsAddCmd.Flags().String("phone", "", "Phone number")
	clientsAddCmd.Flags().String("notes", "", "Notes about the client")

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().String("email", "", "New email")
	clientsEditCmd.Flags().String("company", "", "New company")
	clientsEditCmd.Flags().String("address", "", "New address")
	clientsEditCmd.Flags().String("phone", "", "New phone")
	clientsEditCmd.Flags().String("notes", "", "New notes")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
