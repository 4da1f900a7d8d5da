// Package testing provides shared helpers for package tests.
package testing

import (
	"testing"
	"time"

	"matmind-server-go/internal/platform/config"
	"matmind-server-go/internal/platform/logging"
)

// SetupTestConfig returns a config suitable for tests: in-memory user
// store, no log file, caching and LLM access disabled.
func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.IP = "127.0.0.1"
	cfg.Log.Level = "error"
	cfg.Log.Dir = ""
	cfg.Auth.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Auth.SessionTTL = config.Duration(time.Hour)
	cfg.Database.DSN = ""
	cfg.Redis.Enabled = false

	return cfg
}

// SetupTestLogger returns a quiet stdout logger.
func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()

	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(logger.Close)
	return logger
}

// AssertNoError fails the test on a non-nil error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test when err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}
