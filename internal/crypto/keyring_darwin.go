//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// macKeyring stores the encryption key in the macOS Keychain under the
// invoicekit service entry.
type macKeyring struct{}

func newPlatformKeyring() Keyring {
	return &macKeyring{}
}

func (k *macKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("no encryption key in keychain: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("keychain read failed: %w", err)
	}
	if key == "" {
		return "", errors.New("keychain returned an empty encryption key")
	}
	return key, nil
}

func (k *macKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("keychain write failed: %w", err)
	}
	return nil
}

func (k *macKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		return fmt.Errorf("keychain delete failed: %w", err)
	}
	return nil
}

// IsAvailable writes and removes a throwaway entry; some sandboxed or
// headless sessions expose no usable keychain.
func (k *macKeyring) IsAvailable() bool {
	const probe = "invoicekit-keychain-check"
	if err := keyring.Set(ServiceName, probe, "ok"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, probe)
	return true
}
