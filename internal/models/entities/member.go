package entities

import (
	"time"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

type Member struct {
	ID        string               `db:"id" json:"id"`
	SchoolID  string               `db:"school_id" json:"school_id"`
	FirstName string               `db:"first_name" json:"first_name"`
	LastName  string               `db:"last_name" json:"last_name"`
	Email     string               `db:"email" json:"email"`
	Phone     *string              `db:"phone" json:"phone,omitempty"`
	Role      constants.MemberRole `db:"role" json:"role"`
	JoinedOn  caldate.Date         `db:"joined_on" json:"joined_on"`
	IsActive  bool                 `db:"is_active" json:"is_active"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt time.Time            `db:"updated_at" json:"updated_at"`
}
