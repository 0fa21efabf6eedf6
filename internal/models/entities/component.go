package entities

import (
	"time"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/duestatus"
)

// AircraftComponent is a maintenance-tracked item on an aircraft. The
// current_due_* columns always hold the BASE (unextended) due values; a
// regulatory extension lives only in extension_percent.
type AircraftComponent struct {
	ID                 string                    `db:"id" json:"id"`
	AircraftID         string                    `db:"aircraft_id" json:"aircraft_id"`
	Name               string                    `db:"name" json:"name"`
	Description        *string                   `db:"description" json:"description,omitempty"`
	ComponentType      constants.ComponentType   `db:"component_type" json:"component_type"`
	IntervalType       duestatus.IntervalType    `db:"interval_type" json:"interval_type"`
	IntervalHours      *float64                  `db:"interval_hours" json:"interval_hours"`
	IntervalDays       *int                      `db:"interval_days" json:"interval_days"`
	CurrentDueHours    *float64                  `db:"current_due_hours" json:"current_due_hours"`
	CurrentDueDate     *caldate.Date             `db:"current_due_date" json:"current_due_date"`
	LastCompletedHours *float64                  `db:"last_completed_hours" json:"last_completed_hours"`
	LastCompletedDate  *caldate.Date             `db:"last_completed_date" json:"last_completed_date"`
	ExtensionPercent   *float64                  `db:"extension_percent" json:"extension_percent"`
	Status             constants.ComponentStatus `db:"status" json:"status"`
	Priority           *constants.Priority       `db:"priority" json:"priority,omitempty"`
	Notes              *string                   `db:"notes" json:"notes,omitempty"`
	CreatedAt          time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time                 `db:"updated_at" json:"updated_at"`
}

// DueInput projects the entity onto the calculator's input shape.
func (c *AircraftComponent) DueInput() duestatus.Component {
	return duestatus.Component{
		IntervalType:     c.IntervalType,
		IntervalHours:    c.IntervalHours,
		IntervalDays:     c.IntervalDays,
		DueHours:         c.CurrentDueHours,
		DueDate:          c.CurrentDueDate,
		ExtensionPercent: c.ExtensionPercent,
	}
}
