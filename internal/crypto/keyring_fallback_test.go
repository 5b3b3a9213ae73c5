//go:build !darwin

package crypto

import (
	"strings"
	"testing"
)

func TestEnvKeyring(t *testing.T) {
	kr := NewKeyring()

	t.Setenv(EnvKeyName, "")
	if kr.IsAvailable() {
		t.Error("keyring must be unavailable without the env var")
	}
	if _, err := kr.GetKey(); err == nil {
		t.Error("GetKey must fail without the env var")
	}

	t.Setenv(EnvKeyName, "hunter2")
	if !kr.IsAvailable() {
		t.Error("keyring should be available once the env var is set")
	}
	key, err := kr.GetKey()
	if err != nil {
		t.Fatalf("GetKey: %v", err)
	}
	if key != "hunter2" {
		t.Errorf("key = %q", key)
	}
}

func TestEnvKeyring_SetKeyExplains(t *testing.T) {
	kr := NewKeyring()

	if err := kr.SetKey(""); err == nil {
		t.Error("empty password must be rejected")
	}

	err := kr.SetKey("s3cret")
	if err == nil {
		t.Fatal("SetKey cannot succeed without a system keyring")
	}
	if !strings.Contains(err.Error(), EnvKeyName) {
		t.Errorf("error should point at %s, got %q", EnvKeyName, err)
	}
}
