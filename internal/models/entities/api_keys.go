package entities

import "time"

type ApiKey struct {
	ApiKey    string    `db:"api_key"`
	SchoolID  string    `db:"school_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
