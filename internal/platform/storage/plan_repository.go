package storage

import (
	"context"

	"gorm.io/gorm"

	"matmind-server-go/internal/platform/errors"
)

// PlanRepository persists generated training plans.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Save stores a plan record.
func (r *PlanRepository) Save(ctx context.Context, record *PlanRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "plan.save", "failed to save plan record", err)
	}
	return nil
}

// LatestByUser returns the most recent plan for the user, or nil when none exists.
func (r *PlanRepository) LatestByUser(ctx context.Context, userID string) (*PlanRecord, error) {
	var record PlanRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "plan.latest_by_user", "failed to load plan record", err)
	}
	return &record, nil
}

// CountByUser returns the number of plans generated by the user.
func (r *PlanRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PlanRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(errors.KindStorage, "plan.count_by_user", "failed to count plan records", err)
	}
	return count, nil
}

// Count returns the total number of stored plans.
func (r *PlanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PlanRecord{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(errors.KindStorage, "plan.count", "failed to count plan records", err)
	}
	return count, nil
}
