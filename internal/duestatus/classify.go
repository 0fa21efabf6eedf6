package duestatus

import "time"

// Status is the render-time due classification of a component. Recomputed on
// every evaluation, never persisted.
type Status string

const (
	StatusHealthy         Status = "HEALTHY"
	StatusDueSoon         Status = "DUE_SOON"
	StatusWithinExtension Status = "WITHIN_EXTENSION"
	StatusOverdue         Status = "OVERDUE"
)

// Warning thresholds, measured against the BASE due value so an extension
// never masks an approaching deadline.
const (
	DueSoonHoursThreshold = 10.0
	DueSoonDaysThreshold  = 30
)

// Classify maps a component's margin and extension state onto a status.
// Checks run top-down, first match wins: Overdue > WithinExtension > DueSoon
// > Healthy. Overdue is judged against the EFFECTIVE (extended) threshold;
// WithinExtension requires a configured extension with usage strictly between
// base and extended due; DueSoon is judged against the BASE threshold.
func Classify(c Component, currentHours *float64, now time.Time, loc *time.Location) Status {
	if c.DueHours != nil && currentHours != nil {
		return classifyHours(c, *currentHours)
	}
	if c.DueDate != nil {
		return classifyDate(c, now, loc)
	}
	// Nothing to evaluate against: hours-tracked with unknown tach time,
	// or no due values at all.
	return StatusHealthy
}

func classifyHours(c Component, current float64) Status {
	base := *c.DueHours
	effective := base
	if ext := ExtendedDueHours(c); ext != nil {
		effective = *ext
	}

	if effective-current <= 0 {
		return StatusOverdue
	}
	if c.ExtensionPercent != nil && current > base && current < effective {
		return StatusWithinExtension
	}
	if base-current <= DueSoonHoursThreshold {
		return StatusDueSoon
	}
	return StatusHealthy
}

func classifyDate(c Component, now time.Time, loc *time.Location) Status {
	baseDays := c.DueDate.DaysUntil(now, loc)
	effectiveDays := baseDays
	if ext := ExtendedDueDate(c); ext != nil {
		effectiveDays = ext.DaysUntil(now, loc)
	}

	if effectiveDays <= 0 {
		return StatusOverdue
	}
	if c.ExtensionPercent != nil && baseDays <= 0 && effectiveDays > 0 {
		return StatusWithinExtension
	}
	if baseDays <= DueSoonDaysThreshold {
		return StatusDueSoon
	}
	return StatusHealthy
}
