package duestatus

import "skybound/flightline/internal/caldate"

// ProjectNextDue computes the default due values for the cycle after a
// maintenance visit.
//
// The next hour threshold is the BASE current due hours plus the hour
// interval — never the extended threshold and never the hours flown at the
// visit. A component extended to 1010h and serviced at 1005h is next due at
// 1100h, so extensions cannot compound and permanently shift the cadence.
// The next date anchors on the visit date, since calendar intervals restart
// from the work actually performed.
//
// Either output is nil when its inputs are missing; callers treat the result
// as an editable default, not a mandate.
func ProjectNextDue(c Component, visitDate caldate.Date) (*float64, *caldate.Date) {
	var nextHours *float64
	if c.DueHours != nil && c.IntervalHours != nil {
		v := *c.DueHours + *c.IntervalHours
		nextHours = &v
	}

	var nextDate *caldate.Date
	if c.IntervalDays != nil && !visitDate.IsZero() &&
		(c.IntervalType == IntervalTypeCalendar || c.IntervalType == IntervalTypeBoth) {
		d := visitDate.AddDays(*c.IntervalDays)
		nextDate = &d
	}

	return nextHours, nextDate
}
