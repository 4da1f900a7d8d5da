package storage

import (
	"time"

	"gorm.io/datatypes"
)

// User is the persisted account record. PasswordHash is a bcrypt hash and
// must never leave the storage/auth layers.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PlanRecord stores a generated training plan together with the onboarding
// profile that produced it, so the plan page can be restored after reload.
type PlanRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"index;not null;size:36" json:"user_id"`
	Profile   datatypes.JSON `gorm:"not null" json:"profile"`
	Plan      datatypes.JSON `gorm:"not null" json:"plan"`
	Model     string         `json:"model"`
	Fallback  bool           `gorm:"default:false" json:"fallback"`
	CreatedAt time.Time      `json:"created_at"`
}

func (PlanRecord) TableName() string {
	return "plan_records"
}
