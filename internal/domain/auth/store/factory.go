package store

import (
	"fmt"

	"gorm.io/gorm"
)

// New selects a store implementation from configuration. The sqlite driver
// requires the shared database handle.
func New(cfg Config, db *gorm.DB) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite", "database":
		return NewSQLite(db)
	default:
		return nil, fmt.Errorf("unknown user store driver: %s", cfg.Driver)
	}
}
