package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

// MaintenanceVisit is an immutable-once-logged service record. When tied to a
// component it snapshots the due values in force at the visit (including any
// extension, for audit) alongside the projected next cycle.
type MaintenanceVisit struct {
	ID                   string              `db:"id" json:"id"`
	AircraftID           string              `db:"aircraft_id" json:"aircraft_id"`
	ComponentID          *string             `db:"component_id" json:"component_id,omitempty"`
	VisitDate            caldate.Date        `db:"visit_date" json:"visit_date"`
	VisitType            constants.VisitType `db:"visit_type" json:"visit_type"`
	Description          string              `db:"description" json:"description"`
	TotalCost            *decimal.Decimal    `db:"total_cost" json:"total_cost,omitempty"`
	HoursAtVisit         *float64            `db:"hours_at_visit" json:"hours_at_visit"`
	Notes                *string             `db:"notes" json:"notes,omitempty"`
	DateOutOfMaintenance *caldate.Date       `db:"date_out_of_maintenance" json:"date_out_of_maintenance,omitempty"`
	ComponentDueHours    *float64            `db:"component_due_hours" json:"component_due_hours,omitempty"`
	ComponentDueDate     *caldate.Date       `db:"component_due_date" json:"component_due_date,omitempty"`
	NextDueHours         *float64            `db:"next_due_hours" json:"next_due_hours,omitempty"`
	NextDueDate          *caldate.Date       `db:"next_due_date" json:"next_due_date,omitempty"`
	CreatedAt            time.Time           `db:"created_at" json:"created_at"`
}
