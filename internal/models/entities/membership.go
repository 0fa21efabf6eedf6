package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

type Membership struct {
	ID          string                     `db:"id" json:"id"`
	MemberID    string                     `db:"member_id" json:"member_id"`
	Plan        string                     `db:"plan" json:"plan"`
	StartsOn    caldate.Date               `db:"starts_on" json:"starts_on"`
	EndsOn      *caldate.Date              `db:"ends_on" json:"ends_on,omitempty"`
	Status      constants.MembershipStatus `db:"status" json:"status"`
	MonthlyRate decimal.Decimal            `db:"monthly_rate" json:"monthly_rate"`
	CreatedAt   time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                  `db:"updated_at" json:"updated_at"`
}
