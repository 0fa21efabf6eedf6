package gorm

import (
	"time"
)

// Aircraft is a read-only GORM mapping over the sqlx-managed aircraft table.
// The visit-logging service uses it to verify school ownership inside its
// transaction; writes stay on the sqlx repository.
type Aircraft struct {
	ID           string    `gorm:"column:id;primaryKey"`
	SchoolID     string    `gorm:"column:school_id;type:uuid;index"`
	TailNumber   string    `gorm:"column:tail_number"`
	Model        string    `gorm:"column:model"`
	CurrentHours *float64  `gorm:"column:current_hours"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Aircraft) TableName() string {
	return "aircraft"
}
