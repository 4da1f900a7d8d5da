package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"matmind-server-go/internal/domain/auth/model"
	"matmind-server-go/internal/platform/storage"
)

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLite builds a user store backed by the shared gorm database handle.
func NewSQLite(db *gorm.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite store requires database handle")
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) FindByEmail(ctx context.Context, email string) (model.UserRecord, bool, error) {
	var user storage.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.UserRecord{}, false, nil
		}
		return model.UserRecord{}, false, err
	}
	return fromModel(&user), true, nil
}

func (s *sqliteStore) Create(ctx context.Context, record model.UserRecord) error {
	user := &storage.User{
		ID:           record.ID,
		Email:        record.Email,
		Name:         record.Name,
		PasswordHash: record.PasswordHash,
		CreatedAt:    record.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *sqliteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&storage.User{}).Count(&count).Error
	return count, err
}

func (s *sqliteStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func fromModel(user *storage.User) model.UserRecord {
	return model.UserRecord{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
}
