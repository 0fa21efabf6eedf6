package duestatus

import (
	"math"
	"testing"
	"time"

	"skybound/flightline/internal/caldate"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func dptr(d caldate.Date) *caldate.Date {
	return &d
}

func TestExtendedDue_NoExtensionConfigured(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeBoth,
		IntervalHours: fptr(100),
		IntervalDays:  iptr(365),
		DueHours:      fptr(1000),
		DueDate:       dptr(caldate.New(2025, time.January, 1)),
	}

	if got := ExtendedDueHours(c); got != nil {
		t.Errorf("Expected nil extended due hours without extension, got %v", *got)
	}
	if got := ExtendedDueDate(c); got != nil {
		t.Errorf("Expected nil extended due date without extension, got %v", *got)
	}
}

func TestExtendedDueHours_TenPercent(t *testing.T) {
	c := Component{
		IntervalType:     IntervalTypeHours,
		IntervalHours:    fptr(100),
		DueHours:         fptr(1000),
		ExtensionPercent: fptr(10),
	}

	got := ExtendedDueHours(c)
	if got == nil {
		t.Fatal("Expected extended due hours, got nil")
	}
	if *got != 1010 {
		t.Errorf("Expected 1010, got %v", *got)
	}
}

func TestExtendedDueHours_MissingInputs(t *testing.T) {
	cases := []struct {
		name string
		c    Component
	}{
		{"no base due", Component{IntervalHours: fptr(100), ExtensionPercent: fptr(10)}},
		{"no interval", Component{DueHours: fptr(1000), ExtensionPercent: fptr(10)}},
		{"no percent", Component{DueHours: fptr(1000), IntervalHours: fptr(100)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtendedDueHours(tc.c); got != nil {
				t.Errorf("Expected nil, got %v", *got)
			}
		})
	}
}

func TestExtendedDueDate_TenPercentOfYear(t *testing.T) {
	c := Component{
		IntervalType:     IntervalTypeCalendar,
		IntervalDays:     iptr(365),
		DueDate:          dptr(caldate.New(2025, time.January, 1)),
		ExtensionPercent: fptr(10),
	}

	got := ExtendedDueDate(c)
	if got == nil {
		t.Fatal("Expected extended due date, got nil")
	}
	// floor(365 * 0.10) = 36 days
	want := caldate.New(2025, time.February, 6)
	if !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestExtendedDue_Idempotent(t *testing.T) {
	c := Component{
		IntervalType:     IntervalTypeHours,
		IntervalHours:    fptr(100),
		DueHours:         fptr(1000),
		ExtensionPercent: fptr(10),
	}

	first := ExtendedDueHours(c)
	second := ExtendedDueHours(c)
	if first == nil || second == nil {
		t.Fatal("Expected values from both calls")
	}
	if *first != *second {
		t.Errorf("Pure function returned %v then %v", *first, *second)
	}
	if c.DueHours == nil || *c.DueHours != 1000 {
		t.Error("Input component was mutated")
	}
}

func TestProjectNextDue_AntiCompounding(t *testing.T) {
	// Component extended to 1010h and serviced at 1005h: next due must be
	// 1100 (base 1000 + interval 100), not 1105 or 1110.
	c := Component{
		IntervalType:     IntervalTypeHours,
		IntervalHours:    fptr(100),
		DueHours:         fptr(1000),
		ExtensionPercent: fptr(10),
	}

	nextHours, nextDate := ProjectNextDue(c, caldate.New(2025, time.June, 15))
	if nextHours == nil {
		t.Fatal("Expected projected hours")
	}
	if *nextHours != 1100 {
		t.Errorf("Expected 1100, got %v", *nextHours)
	}
	if nextDate != nil {
		t.Errorf("Expected no date projection for HOURS component, got %s", nextDate)
	}
}

func TestProjectNextDue_CalendarAnchorsOnVisit(t *testing.T) {
	c := Component{
		IntervalType: IntervalTypeBoth,
		IntervalDays: iptr(365),
		DueDate:      dptr(caldate.New(2025, time.January, 1)),
	}

	visit := caldate.New(2025, time.March, 10)
	_, nextDate := ProjectNextDue(c, visit)
	if nextDate == nil {
		t.Fatal("Expected projected date")
	}
	want := visit.AddDays(365)
	if !nextDate.Equal(want) {
		t.Errorf("Expected %s, got %s", want, nextDate)
	}
}

func TestProjectNextDue_MissingBase(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
	}

	nextHours, _ := ProjectNextDue(c, caldate.Date{})
	if nextHours != nil {
		t.Errorf("Expected nil projection without a base due value, got %v", *nextHours)
	}
}

func TestClassify_OverdueDominates(t *testing.T) {
	// Past the extended threshold: every other heuristic would also match,
	// but Overdue wins.
	c := Component{
		IntervalType:     IntervalTypeHours,
		IntervalHours:    fptr(100),
		DueHours:         fptr(1000),
		ExtensionPercent: fptr(10),
	}

	got := Classify(c, fptr(1011), time.Now(), time.UTC)
	if got != StatusOverdue {
		t.Errorf("Expected OVERDUE past extended threshold, got %s", got)
	}
}

func TestClassify_NoExtensionIsNeverWithinExtension(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
		DueHours:      fptr(1000),
	}

	got := Classify(c, fptr(1005), time.Now(), time.UTC)
	if got != StatusOverdue {
		t.Errorf("Expected OVERDUE 5h past base due with no extension, got %s", got)
	}
}

func TestClassify_WithinExtension(t *testing.T) {
	c := Component{
		IntervalType:     IntervalTypeHours,
		IntervalHours:    fptr(100),
		DueHours:         fptr(1000),
		ExtensionPercent: fptr(10),
	}

	got := Classify(c, fptr(1005), time.Now(), time.UTC)
	if got != StatusWithinExtension {
		t.Errorf("Expected WITHIN_EXTENSION between base and extended due, got %s", got)
	}
}

func TestClassify_DueSoonUsesBaseNotExtended(t *testing.T) {
	// 8h short of base due. The extension pushes the effective threshold out
	// to 1010, but the warning must still fire against the base value.
	c := Component{
		IntervalType:     IntervalTypeHours,
		IntervalHours:    fptr(100),
		DueHours:         fptr(1000),
		ExtensionPercent: fptr(10),
	}

	got := Classify(c, fptr(992), time.Now(), time.UTC)
	if got != StatusDueSoon {
		t.Errorf("Expected DUE_SOON, got %s", got)
	}
}

func TestClassify_Healthy(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
		DueHours:      fptr(1000),
	}

	got := Classify(c, fptr(900), time.Now(), time.UTC)
	if got != StatusHealthy {
		t.Errorf("Expected HEALTHY with 100h margin, got %s", got)
	}
}

func TestClassify_CalendarOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := Component{
		IntervalType: IntervalTypeCalendar,
		IntervalDays: iptr(365),
		DueDate:      dptr(caldate.New(2025, time.June, 1)),
	}

	got := Classify(c, nil, now, time.UTC)
	if got != StatusOverdue {
		t.Errorf("Expected OVERDUE two weeks past due date, got %s", got)
	}
}

func TestClassify_CalendarWithinExtension(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := Component{
		IntervalType:     IntervalTypeCalendar,
		IntervalDays:     iptr(365),
		DueDate:          dptr(caldate.New(2025, time.June, 1)),
		ExtensionPercent: fptr(10), // 36 extra days, extended due 2025-07-07
	}

	got := Classify(c, nil, now, time.UTC)
	if got != StatusWithinExtension {
		t.Errorf("Expected WITHIN_EXTENSION, got %s", got)
	}
}

func TestClassify_CalendarDueSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Component{
		IntervalType: IntervalTypeCalendar,
		IntervalDays: iptr(365),
		DueDate:      dptr(caldate.New(2025, time.June, 20)),
	}

	got := Classify(c, nil, now, time.UTC)
	if got != StatusDueSoon {
		t.Errorf("Expected DUE_SOON 19 days out, got %s", got)
	}
}

func TestMargin_NilCurrentHoursSortsLast(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
		DueHours:      fptr(1000),
	}

	label, sortKey := Margin(c, nil, time.Now(), time.UTC)
	if label != "N/A" {
		t.Errorf("Expected N/A, got %q", label)
	}
	if !math.IsInf(sortKey, 1) {
		t.Errorf("Expected +Inf sort key, got %v", sortKey)
	}
}

func TestMargin_ExactZeroIsDueNow(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
		DueHours:      fptr(1000),
	}

	label, _ := Margin(c, fptr(1000), time.Now(), time.UTC)
	if label != "Due now" {
		t.Errorf("Expected 'Due now' at exactly zero margin, got %q", label)
	}
}

func TestMargin_NegativeEpsilonIsOverdue(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
		DueHours:      fptr(1000),
	}

	// Just past due, inside the epsilon band: still Overdue, never "Due now".
	label, sortKey := Margin(c, fptr(1000.005), time.Now(), time.UTC)
	if label != "Overdue" {
		t.Errorf("Expected 'Overdue' for negative margin inside epsilon, got %q", label)
	}
	if sortKey >= 0 {
		t.Errorf("Expected negative sort key, got %v", sortKey)
	}
}

func TestMargin_NegativeIsOverdue(t *testing.T) {
	c := Component{
		IntervalType:  IntervalTypeHours,
		IntervalHours: fptr(100),
		DueHours:      fptr(1000),
	}

	label, sortKey := Margin(c, fptr(1003), time.Now(), time.UTC)
	if label != "Overdue" {
		t.Errorf("Expected 'Overdue', got %q", label)
	}
	if sortKey >= 0 {
		t.Errorf("Expected negative sort key, got %v", sortKey)
	}
}

func TestMargin_HoursTakePriorityOverDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Component{
		IntervalType:  IntervalTypeBoth,
		IntervalHours: fptr(100),
		IntervalDays:  iptr(365),
		DueHours:      fptr(1000),
		DueDate:       dptr(caldate.New(2030, time.January, 1)),
	}

	label, _ := Margin(c, fptr(950), now, time.UTC)
	if label != "50.0h" {
		t.Errorf("Expected hours margin to win, got %q", label)
	}
}

func TestMargin_CalendarDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := Component{
		IntervalType: IntervalTypeCalendar,
		IntervalDays: iptr(365),
		DueDate:      dptr(caldate.New(2025, time.June, 11)),
	}

	label, sortKey := Margin(c, nil, now, time.UTC)
	if label != "10 days" {
		t.Errorf("Expected '10 days', got %q", label)
	}
	if sortKey != 240 {
		t.Errorf("Expected sort key 240h, got %v", sortKey)
	}
}

func TestEvaluate_EndToEndBothComponent(t *testing.T) {
	// interval BOTH 100h/365d, base due 500h / 2025-01-01, no extension,
	// tach at 495h: Due Soon with a 5.0h margin.
	c := Component{
		IntervalType:  IntervalTypeBoth,
		IntervalHours: fptr(100),
		IntervalDays:  iptr(365),
		DueHours:      fptr(500),
		DueDate:       dptr(caldate.New(2025, time.January, 1)),
	}

	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	eval := Evaluate(c, fptr(495), now, time.UTC)

	if eval.Status != StatusDueSoon {
		t.Errorf("Expected DUE_SOON, got %s", eval.Status)
	}
	if eval.DueIn != "5.0h" {
		t.Errorf("Expected '5.0h', got %q", eval.DueIn)
	}
	if eval.ExtendedDueHours != nil || eval.ExtendedDueDate != nil {
		t.Error("Expected no extended values without an extension")
	}
}
