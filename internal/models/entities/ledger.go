package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

// LedgerEntry is one line of a member's account: a charge (flight time,
// membership dues, course fees) or a payment against it.
type LedgerEntry struct {
	ID          string               `db:"id" json:"id"`
	MemberID    string               `db:"member_id" json:"member_id"`
	EntryDate   caldate.Date         `db:"entry_date" json:"entry_date"`
	Kind        constants.LedgerKind `db:"kind" json:"kind"`
	Description string               `db:"description" json:"description"`
	Amount      decimal.Decimal      `db:"amount" json:"amount"`
	Reference   *string              `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
}
