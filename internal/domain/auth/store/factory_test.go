package store

import (
	"context"
	"path/filepath"
	"testing"

	"matmind-server-go/internal/platform/storage"
)

func TestFactoryMemoryDriver(t *testing.T) {
	for _, driver := range []string{"", "memory"} {
		s, err := New(Config{Driver: driver}, nil)
		if err != nil {
			t.Fatalf("driver %q: unexpected error: %v", driver, err)
		}
		if s == nil {
			t.Fatalf("driver %q: expected store instance", driver)
		}
		_ = s.Close(context.Background())
	}
}

func TestFactorySQLiteDriver(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	s, err := New(Config{Driver: "sqlite"}, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})
}

func TestFactorySQLiteRequiresHandle(t *testing.T) {
	if _, err := New(Config{Driver: "sqlite"}, nil); err == nil {
		t.Fatal("expected error when database handle is missing")
	}
}

func TestFactoryUnknownDriver(t *testing.T) {
	if _, err := New(Config{Driver: "postgres"}, nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
