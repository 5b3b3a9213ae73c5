package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/invoicekit/internal/dates"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Invoicing reports and statistics",
}

var reportStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall invoicing statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.RefreshStatuses(ctx); err != nil {
			return fmt.Errorf("failed to refresh statuses: %w", err)
		}

		stats, err := appInstance.ReportService.GetStatistics(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}

		fmt.Println("Invoicing Statistics")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("Invoices:        %d\n", stats.TotalInvoices)
		fmt.Printf("  Draft:         %d\n", stats.DraftInvoices)
		fmt.Printf("  Pending:       %d\n", stats.PendingInvoices)
		fmt.Printf("  Overdue:       %d\n", stats.OverdueInvoices)
		fmt.Printf("  Paid:          %d\n", stats.PaidInvoices)
		fmt.Println()
		fmt.Printf("Total billed:    %s\n", formatMoney(stats.TotalRevenue))
		fmt.Printf("Average invoice: %s\n", formatMoney(stats.AverageInvoiceValue))
		fmt.Printf("Total paid:      %s\n", formatMoney(stats.TotalPaidAmount))
		fmt.Printf("Outstanding:     %s\n", formatMoney(stats.TotalOutstanding))
		fmt.Printf("Payment rate:    %.1f%%\n", stats.PaymentRate)

		return nil
	},
}

var reportOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List overdue invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices, err := appInstance.ReportService.GetOverdue(ctx)
		if err != nil {
			return fmt.Errorf("failed to list overdue invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No overdue invoices")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-5s %-15s %-12s %-14s %s\n", "ID", "Number", "Due", "Total", "Overdue by")
		fmt.Println(strings.Repeat("-", 65))
		for _, inv := range invoices {
			fmt.Printf("%-5d %-15s %-12s %-14s %d day(s)\n",
				inv.ID,
				inv.InvoiceNumber,
				formatDate(inv.DueDate),
				formatMoney(inv.Total),
				dates.DaysBetween(inv.DueDate, now),
			)
		}

		return nil
	},
}

var reportDueSoonCmd = &cobra.Command{
	Use:   "due-soon",
	Short: "List invoices due within the next days",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		days, _ := cmd.Flags().GetInt("days")

		invoices, err := appInstance.ReportService.GetDueSoon(ctx, days)
		if err != nil {
			return fmt.Errorf("failed to list due invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("Nothing due soon")
			return nil
		}

		fmt.Printf("%-5s %-15s %-12s %-14s\n", "ID", "Number", "Due", "Total")
		fmt.Println(strings.Repeat("-", 50))
		for _, inv := range invoices {
			fmt.Printf("%-5d %-15s %-12s %-14s\n",
				inv.ID,
				inv.InvoiceNumber,
				formatDate(inv.DueDate),
				formatMoney(inv.Total),
			)
		}

		return nil
	},
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Bucket invoices by calendar period",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		periodStr, _ := cmd.Flags().GetString("period")
		period := dates.Period(periodStr)

		buckets, err := appInstance.ReportService.GetPeriodSummary(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to build summary: %w", err)
		}

		if len(buckets) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		keys := make([]string, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Printf("%-12s %8s %14s %14s\n", "Period", "Count", "Billed", "Paid")
		fmt.Println(strings.Repeat("-", 52))
		for _, k := range keys {
			b := buckets[k]
			fmt.Printf("%-12s %8d %14s %14s\n", k, b.Count, formatMoney(b.Total), formatMoney(b.Paid))
		}

		return nil
	},
}

var reportRevenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Show paid revenue by month",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().Year()
		}

		revenue, err := appInstance.ReportService.GetRevenueByMonth(ctx, year)
		if err != nil {
			return fmt.Errorf("failed to compute revenue: %w", err)
		}

		fmt.Printf("Revenue %d\n", year)
		fmt.Println(strings.Repeat("-", 30))
		total := 0.0
		for m := time.January; m <= time.December; m++ {
			fmt.Printf("%-12s %14s\n", m.String(), formatMoney(revenue[m]))
			total += revenue[m]
		}
		fmt.Println(strings.Repeat("-", 30))
		fmt.Printf("%-12s %14s\n", "Total", formatMoney(total))

		return nil
	},
}

var reportSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search invoices by client, number, notes, or items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices, err := appInstance.ReportService.SearchInvoices(ctx, args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No matches")
			return nil
		}

		fmt.Printf("%-5s %-15s %-12s %-14s %-10s\n", "ID", "Number", "Date", "Total", "Status")
		fmt.Println(strings.Repeat("-", 60))
		for _, inv := range invoices {
			fmt.Printf("%-5d %-15s %-12s %-14s %-10s\n",
				inv.ID,
				inv.InvoiceNumber,
				formatDate(inv.Date),
				formatMoney(inv.Total),
				inv.Status,
			)
		}

		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportStatsCmd)
	reportCmd.AddCommand(reportOverdueCmd)
	reportCmd.AddCommand(reportDueSoonCmd)
	reportCmd.AddCommand(reportSummaryCmd)
	reportCmd.AddCommand(reportRevenueCmd)
	reportCmd.AddCommand(reportSearchCmd)

	reportDueSoonCmd.Flags().Int("days", 7, "Window in days")
	reportSummaryCmd.Flags().String("period", "month", "Bucket size (day, week, month, quarter, year)")
	reportRevenueCmd.Flags().Int("year", 0, "Year (defaults to current)")
}
