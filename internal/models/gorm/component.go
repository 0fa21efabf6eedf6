package gorm

import (
	"time"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/duestatus"
)

// AircraftComponent is the GORM mapping used by the visit-logging service.
// Date columns are stored as timestamps so the model also works on the
// in-memory SQLite used in tests; the caldate type normalizes on read.
type AircraftComponent struct {
	ID                 string                    `gorm:"column:id;primaryKey"`
	AircraftID         string                    `gorm:"column:aircraft_id;type:uuid;index"`
	Name               string                    `gorm:"column:name"`
	Description        *string                   `gorm:"column:description"`
	ComponentType      constants.ComponentType   `gorm:"column:component_type"`
	IntervalType       duestatus.IntervalType    `gorm:"column:interval_type"`
	IntervalHours      *float64                  `gorm:"column:interval_hours"`
	IntervalDays       *int                      `gorm:"column:interval_days"`
	CurrentDueHours    *float64                  `gorm:"column:current_due_hours"`
	CurrentDueDate     *caldate.Date             `gorm:"column:current_due_date;type:date"`
	LastCompletedHours *float64                  `gorm:"column:last_completed_hours"`
	LastCompletedDate  *caldate.Date             `gorm:"column:last_completed_date;type:date"`
	ExtensionPercent   *float64                  `gorm:"column:extension_percent"`
	Status             constants.ComponentStatus `gorm:"column:status;default:active"`
	Priority           *constants.Priority       `gorm:"column:priority"`
	Notes              *string                   `gorm:"column:notes"`
	CreatedAt          time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (AircraftComponent) TableName() string {
	return "aircraft_components"
}

// DueInput projects the model onto the calculator's input shape.
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
