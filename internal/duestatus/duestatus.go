// Package duestatus computes due state for maintenance-tracked aircraft
// components: regulatory-extension arithmetic, remaining margin, status
// classification and next-cycle projection. Everything here is a pure
// function of its inputs; callers pass the aircraft's current hours, the
// evaluation clock and the school's time zone explicitly.
package duestatus

import (
	"math"
	"time"

	"skybound/flightline/internal/caldate"
)

// IntervalType says which axes a component is tracked on.
type IntervalType string

const (
	IntervalTypeHours    IntervalType = "HOURS"
	IntervalTypeCalendar IntervalType = "CALENDAR"
	IntervalTypeBoth     IntervalType = "BOTH"
)

// Component carries the tracked attributes the calculator needs. DueHours and
// DueDate are always the BASE (unextended) due values; an active extension is
// represented only by ExtensionPercent.
type Component struct {
	IntervalType     IntervalType
	IntervalHours    *float64
	IntervalDays     *int
	DueHours         *float64
	DueDate          *caldate.Date
	ExtensionPercent *float64
}

// ExtendedDueHours returns the extension-adjusted due hours, or nil unless
// the extension percent, base due hours and hour interval are all present.
func ExtendedDueHours(c Component) *float64 {
	if c.ExtensionPercent == nil || c.DueHours == nil || c.IntervalHours == nil {
		return nil
	}
	v := *c.DueHours + *c.IntervalHours*(*c.ExtensionPercent/100)
	return &v
}

// ExtendedDueDate returns the extension-adjusted due date, or nil unless the
// extension percent, base due date and day interval are all present. The
// extension window is floored to whole days.
func ExtendedDueDate(c Component) *caldate.Date {
	if c.ExtensionPercent == nil || c.DueDate == nil || c.IntervalDays == nil {
		return nil
	}
	days := int(math.Floor(float64(*c.IntervalDays) * (*c.ExtensionPercent / 100)))
	d := c.DueDate.AddDays(days)
	return &d
}

// EffectiveDueHours is the extended due hours when an extension is active,
// else the base value.
func EffectiveDueHours(c Component) *float64 {
	if ext := ExtendedDueHours(c); ext != nil {
		return ext
	}
	return c.DueHours
}

// EffectiveDueDate is the extended due date when an extension is active,
// else the base value.
func EffectiveDueDate(c Component) *caldate.Date {
	if ext := ExtendedDueDate(c); ext != nil {
		return ext
	}
	return c.DueDate
}

// Evaluation is the full render-time due picture for one component.
type Evaluation struct {
	Status           Status        `json:"status"`
	DueIn            string        `json:"due_in"`
	SortKey          float64       `json:"-"`
	ExtendedDueHours *float64      `json:"extended_due_hours,omitempty"`
	ExtendedDueDate  *caldate.Date `json:"extended_due_date,omitempty"`
}

// Evaluate computes extension values, margin label and status in one pass.
func Evaluate(c Component, currentHours *float64, now time.Time, loc *time.Location) Evaluation {
	label, sortKey := Margin(c, currentHours, now, loc)
	return Evaluation{
		Status:           Classify(c, currentHours, now, loc),
		DueIn:            label,
		SortKey:          sortKey,
		ExtendedDueHours: ExtendedDueHours(c),
		ExtendedDueDate:  ExtendedDueDate(c),
	}
}
