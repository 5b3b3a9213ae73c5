//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKeyring reads the encryption key from INVOICEKIT_DB_KEY on platforms
// where no system keyring is wired up. It cannot persist anything itself;
// SetKey and DeleteKey tell the user what to change instead.
type envKeyring struct{}

func newPlatformKeyring() Keyring {
	return &envKeyring{}
}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKeyName)
	if key == "" {
		return "", fmt.Errorf("%s is not set", EnvKeyName)
	}
	return key, nil
}

func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("no system keyring on this platform: set %s=%q in your environment or .env file", EnvKeyName, password)
}

func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("no system keyring on this platform: unset %s yourself", EnvKeyName)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKeyName) != ""
}
