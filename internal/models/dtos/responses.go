package dtos

import (
	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/duestatus"
	"skybound/flightline/internal/models/entities"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ComponentDue pairs a component row with its evaluated due status.
// This is the shape the fleet dashboard renders.
type ComponentDue struct {
	entities.AircraftComponent
	CurrentHours     *float64         `json:"current_hours"`
	Status           duestatus.Status `json:"due_status"`
	DueIn            string           `json:"due_in"`
	ExtendedDueHours *float64         `json:"extended_due_hours,omitempty"`
	ExtendedDueDate  *caldate.Date    `json:"extended_due_date,omitempty"`
}

type ComponentListResponse struct {
	AircraftID string         `json:"aircraft_id,omitempty"`
	Components []ComponentDue `json:"components"`
}

type FleetSummaryResponse struct {
	TotalComponents int `json:"total_components"`
	Overdue         int `json:"overdue"`
	WithinExtension int `json:"within_extension"`
	DueSoon         int `json:"due_soon"`
	Healthy         int `json:"healthy"`
}

// NextDuePreview is returned by the visit preview endpoint before anything
// is persisted, so the front desk can confirm the projected cycle.
type NextDuePreview struct {
	ComponentID  string        `json:"component_id"`
	NextDueHours *float64      `json:"next_due_hours,omitempty"`
	NextDueDate  *caldate.Date `json:"next_due_date,omitempty"`
}

type VisitLoggedResponse struct {
	Visit     entities.MaintenanceVisit `json:"visit"`
	Component *ComponentDue             `json:"component,omitempty"`
}

type StatementLine struct {
	Date        caldate.Date    `json:"date"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

type StatementResponse struct {
	MemberID       string          `json:"member_id"`
	MemberName     string          `json:"member_name"`
	From           caldate.Date    `json:"from"`
	To             caldate.Date    `json:"to"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalCharges   decimal.Decimal `json:"total_charges"`
	TotalPayments  decimal.Decimal `json:"total_payments"`
	Lines          []StatementLine `json:"lines"`
}

type ShareLinkResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type MemberProfileResponse struct {
	Member      entities.Member            `json:"member"`
	Memberships []entities.Membership      `json:"memberships"`
	Credentials []entities.PilotCredential `json:"credentials"`
	Enrollments []entities.Enrollment      `json:"enrollments"`
}
