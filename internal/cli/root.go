package cli

import (
	"github.com/spf13/cobra"

	"github.com/andy/invoicekit/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "invoicekit",
	Short: "A CLI invoicing tool for freelancers and small businesses",
	Long: `Invoicekit manages clients, invoices, and payments from the command line.

Invoices move through draft, sent, paid, overdue, and cancelled states.
Statuses are derived from due dates and recorded payments, so listings
always reflect the current state of your books.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
}
