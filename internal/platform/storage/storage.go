// Package storage owns the gorm database handle and persistence models.
package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"matmind-server-go/internal/platform/errors"
)

// Open connects to the SQLite database and applies schema migrations.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New(errors.KindStorage, "open", "database dsn is empty")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "open", "failed to open database", err)
	}

	if err := db.AutoMigrate(&User{}, &PlanRecord{}); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "migrate", "failed to migrate schema", err)
	}
	return db, nil
}
