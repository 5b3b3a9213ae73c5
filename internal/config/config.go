package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Business identity used on invoices and emails
	Business BusinessConfig `yaml:"business"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type InvoiceConfig struct {
	NumberPattern   string  `yaml:"number_pattern"`   // sequential, yearly, monthly, custom
	NumberPrefix    string  `yaml:"number_prefix"`    // Invoice number prefix (e.g., "INV")
	NumberSuffix    string  `yaml:"number_suffix"`    // Optional suffix appended to numbers
	NumberDigits    int     `yaml:"number_digits"`    // Zero-pad width of the sequence
	NumberSeparator string  `yaml:"number_separator"` // Separator between number segments
	DefaultDueDays  int     `yaml:"default_due_days"` // Days until invoice due
	DefaultTaxRate  float64 `yaml:"default_tax_rate"` // Tax rate as decimal (0.10 = 10%)
	Currency        string  `yaml:"currency"`         // ISO 4217 currency code
	Locale          string  `yaml:"locale"`           // BCP 47 locale for formatting

	// StickyPaid keeps a stored paid status even if payments later stop
	// covering the total (e.g. a payment row is removed by hand).
	StickyPaid bool `yaml:"sticky_paid"`

	// AllowNonDraftItemEdits permits line-item edits on sent invoices.
	AllowNonDraftItemEdits bool `yaml:"allow_non_draft_item_edits"`
}

type BusinessConfig struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	Website string `yaml:"website"`
	TaxID   string `yaml:"tax_id"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfigPath returns ~/.config/invoicekit/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv("INVOICEKIT_CONFIG"); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoicekit", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "invoicekit", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "invoicekit", "invoicekit.db"),
		},
		Invoice: InvoiceConfig{
			NumberPattern:   "yearly",
			NumberPrefix:    "INV",
			NumberDigits:    3,
			NumberSeparator: "-",
			DefaultDueDays:  30,
			DefaultTaxRate:  0.10,
			Currency:        "USD",
			Locale:          "en-US",
			StickyPaid:      true,
		},
		Business: BusinessConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, etc.)
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	return os.MkdirAll(dbDir, 0700)
}
