package config

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/rscloud/internal/config"
)

func TestGet_DefaultVariant_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "default-variant")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_DefaultVariant_Set(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{DefaultVariant: "rackspace-uk"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "Default-Variant")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "rackspace-uk" {
		t.Errorf("expected 'rackspace-uk', got: %s", stdout)
	}
}

func TestGet_AllKeys(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{Username: "alice"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "get")

	for _, want := range []string{"username: alice", "default-variant: (not set)", "auth-url: (not set)", "pricing-file: (not set)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
