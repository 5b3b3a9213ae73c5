package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/andy/invoicekit/internal/config"
	"github.com/andy/invoicekit/internal/crypto"
	"github.com/andy/invoicekit/internal/db"
	"github.com/andy/invoicekit/internal/logger"
	"github.com/andy/invoicekit/internal/repository"
	"github.com/andy/invoicekit/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Log    zerolog.Logger

	// Repositories
	ClientRepo  repository.ClientRepository
	InvoiceRepo repository.InvoiceRepository
	PaymentRepo repository.PaymentRepository

	// Services
	ClientService  service.ClientService
	InvoiceService service.InvoiceService
	ReportService  service.ReportService
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening database
// 4. Running migrations
// 5. Creating repositories
// 6. Creating services
func New(ctx context.Context) (*App, error) {
	// Load config from default path
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("app")

	// Get keyring for secure password storage
	keyring := crypto.NewKeyring()

	// Try to get existing encryption key
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		// Store the key in keyring
		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	// Open the database with encryption
	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations to ensure schema is up to date
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug().Str("db", cfg.Database.Path).Msg("database ready")

	// Create repositories
	clientRepo := repository.NewClientRepo(database)
	invoiceRepo := repository.NewInvoiceRepo(database)
	paymentRepo := repository.NewPaymentRepo(database)

	// Create services with their dependencies
	clientService := service.NewClientService(clientRepo, invoiceRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, paymentRepo, cfg.Invoice)
	reportService := service.NewReportService(invoiceRepo, clientRepo, paymentRepo)

	return &App{
		Config:         cfg,
		DB:             database,
		Log:            log,
		ClientRepo:     clientRepo,
		InvoiceRepo:    invoiceRepo,
		PaymentRepo:    paymentRepo,
		ClientService:  clientService,
		InvoiceService: invoiceService,
		ReportService:  reportService,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// RefreshStatuses sweeps stored invoices so listings show current statuses
func (a *App) RefreshStatuses(ctx context.Context) error {
	changed, err := a.InvoiceService.RefreshStatuses(ctx)
	if err != nil {
		return err
	}
	if changed > 0 {
		a.Log.Debug().Int("changed", changed).Msg("invoice statuses refreshed")
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your invoicing data will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	// Check if passwords match
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
