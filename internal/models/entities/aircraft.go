package entities

import "time"

type Aircraft struct {
	ID           string    `db:"id" json:"id"`
	SchoolID     string    `db:"school_id" json:"school_id"`
	TailNumber   string    `db:"tail_number" json:"tail_number"`
	Model        string    `db:"model" json:"model"`
	CurrentHours *float64  `db:"current_hours" json:"current_hours"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
