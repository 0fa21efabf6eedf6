package entities

import (
	"time"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

// PilotCredential is an expiry-tracked document (medical, flight review,
// rating, endorsement). Expiries run through the same calendar classifier as
// component due dates.
type PilotCredential struct {
	ID             string                   `db:"id" json:"id"`
	MemberID       string                   `db:"member_id" json:"member_id"`
	CredentialType constants.CredentialType `db:"credential_type" json:"credential_type"`
	Number         *string                  `db:"number" json:"number,omitempty"`
	IssuedOn       *caldate.Date            `db:"issued_on" json:"issued_on,omitempty"`
	ExpiresOn      *caldate.Date            `db:"expires_on" json:"expires_on,omitempty"`
	Notes          *string                  `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time                `db:"updated_at" json:"updated_at"`
}
