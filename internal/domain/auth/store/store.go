package store

import (
	"context"

	"matmind-server-go/internal/domain/auth/model"
)

// Store defines the user lookup behaviour required by the credential
// verifier. Emails are stored normalized (trimmed, lowercased).
type Store interface {
	FindByEmail(ctx context.Context, email string) (model.UserRecord, bool, error)
	Create(ctx context.Context, record model.UserRecord) error
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

// Config describes the high level store selection parameters.
type Config struct {
	Driver string
	SQLite *SQLiteConfig
}

// SQLiteConfig provides the database dependency.
type SQLiteConfig struct {
	DSN string
}
