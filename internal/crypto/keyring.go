// Package crypto manages the database encryption key. The key lives in the
// platform keyring where one is available; elsewhere it comes from the
// INVOICEKIT_DB_KEY environment variable (a .env file works too, main loads
// it at startup).
package crypto

// Keyring stores and retrieves the database encryption key.
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	// ServiceName identifies invoicekit entries in the platform keyring.
	ServiceName = "invoicekit"

	// KeyName is the account under which the encryption key is stored.
	KeyName = "db-encryption-key"

	// EnvKeyName is the environment fallback consulted on platforms
	// without a keyring.
	EnvKeyName = "INVOICEKIT_DB_KEY"
)

// NewKeyring returns the keyring implementation for the current platform.
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
