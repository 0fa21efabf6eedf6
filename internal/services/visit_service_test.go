package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/duestatus"
	"skybound/flightline/internal/models/dtos"
	gormModels "skybound/flightline/internal/models/gorm"
)

// Mock VisitEventPublisher
type mockPublisher struct {
	enqueueFunc func(ctx context.Context, streamName string, event *common.VisitEvent) error
}

func (m *mockPublisher) Enqueue(ctx context.Context, streamName string, event *common.VisitEvent) error {
	if m.enqueueFunc == nil {
		return nil
	}
	return m.enqueueFunc(ctx, streamName, event)
}

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&gormModels.Aircraft{}, &gormModels.AircraftComponent{}, &gormModels.MaintenanceVisit{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func seedAircraft(t *testing.T, db *gorm.DB, id, schoolID string) {
	ac := &gormModels.Aircraft{
		ID:         id,
		SchoolID:   schoolID,
		TailNumber: "N" + id[:5],
		Model:      "C172",
		IsActive:   true,
	}
	if err := db.Create(ac).Error; err != nil {
		t.Fatalf("Failed to seed aircraft: %v", err)
	}
}

func seedComponent(t *testing.T, db *gorm.DB, comp *gormModels.AircraftComponent) *gormModels.AircraftComponent {
	if err := db.Create(comp).Error; err != nil {
		t.Fatalf("Failed to seed component: %v", err)
	}
	return comp
}

const testAircraftID = "11111111-1111-4111-8111-111111111111"

func TestVisitService_LogVisit_RollsComponentForward(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	ext := 10.0
	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:       testAircraftID,
		Name:             "100h inspection",
		ComponentType:    constants.ComponentInspection,
		IntervalType:     duestatus.IntervalTypeHours,
		IntervalHours:    fptr(100),
		CurrentDueHours:  fptr(1000),
		ExtensionPercent: &ext,
		Status:           constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	resp, err := service.LogVisit(context.Background(), "school-1", &dtos.LogVisitReq{
		AircraftID:   comp.AircraftID,
		ComponentID:  &comp.ID,
		VisitDate:    "2025-03-15",
		VisitType:    "Scheduled",
		Description:  "100 hour inspection",
		HoursAtVisit: fptr(1005),
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Snapshot keeps the extended threshold in force at the visit.
	if resp.Visit.ComponentDueHours == nil || *resp.Visit.ComponentDueHours != 1010 {
		t.Errorf("Expected snapshot due hours 1010, got %v", resp.Visit.ComponentDueHours)
	}

	// Next cycle projects from the base due, not the extended value and not
	// the hours flown at the visit.
	if resp.Visit.NextDueHours == nil || *resp.Visit.NextDueHours != 1100 {
		t.Errorf("Expected next due 1100, got %v", resp.Visit.NextDueHours)
	}

	var reloaded gormModels.AircraftComponent
	if err := db.Where("id = ?", comp.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("Component not found after visit: %v", err)
	}

	if reloaded.CurrentDueHours == nil || *reloaded.CurrentDueHours != 1100 {
		t.Errorf("Expected component rolled to 1100, got %v", reloaded.CurrentDueHours)
	}
	if reloaded.ExtensionPercent != nil {
		t.Errorf("Expected extension cleared after visit, got %v", *reloaded.ExtensionPercent)
	}
	if reloaded.LastCompletedHours == nil || *reloaded.LastCompletedHours != 1005 {
		t.Errorf("Expected last completed hours 1005, got %v", reloaded.LastCompletedHours)
	}
}

func TestVisitService_LogVisit_CalendarAnchorsOnVisitDate(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	due := caldate.New(2025, time.April, 1)
	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:     testAircraftID,
		Name:           "ELT battery",
		ComponentType:  constants.ComponentBattery,
		IntervalType:   duestatus.IntervalTypeCalendar,
		IntervalDays:   iptr(365),
		CurrentDueDate: &due,
		Status:         constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	resp, err := service.LogVisit(context.Background(), "school-1", &dtos.LogVisitReq{
		AircraftID:  comp.AircraftID,
		ComponentID: &comp.ID,
		VisitDate:   "2025-03-01",
		VisitType:   "Inspection",
		Description: "Battery replacement",
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := caldate.New(2026, time.March, 1)
	if resp.Visit.NextDueDate == nil || !resp.Visit.NextDueDate.Equal(want) {
		t.Errorf("Expected next due %s, got %v", want, resp.Visit.NextDueDate)
	}

	var reloaded gormModels.AircraftComponent
	db.Where("id = ?", comp.ID).First(&reloaded)
	if reloaded.CurrentDueDate == nil || !reloaded.CurrentDueDate.Equal(want) {
		t.Errorf("Expected component due date %s, got %v", want, reloaded.CurrentDueDate)
	}
}

func TestVisitService_LogVisit_OverridesProjection(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:      testAircraftID,
		Name:            "Oil service",
		ComponentType:   constants.ComponentService,
		IntervalType:    duestatus.IntervalTypeHours,
		IntervalHours:   fptr(50),
		CurrentDueHours: fptr(500),
		Status:          constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	resp, err := service.LogVisit(context.Background(), "school-1", &dtos.LogVisitReq{
		AircraftID:   comp.AircraftID,
		ComponentID:  &comp.ID,
		VisitDate:    "2025-06-10",
		VisitType:    "Unscheduled",
		Description:  "Early oil change, mechanic set next due manually",
		NextDueHours: fptr(540),
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Visit.NextDueHours == nil || *resp.Visit.NextDueHours != 540 {
		t.Errorf("Expected overridden next due 540, got %v", resp.Visit.NextDueHours)
	}

	var reloaded gormModels.AircraftComponent
	db.Where("id = ?", comp.ID).First(&reloaded)
	if reloaded.CurrentDueHours == nil || *reloaded.CurrentDueHours != 540 {
		t.Errorf("Expected component due 540, got %v", reloaded.CurrentDueHours)
	}
}

func TestVisitService_LogVisit_WithoutComponent(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	service := NewVisitService(db, &mockPublisher{}, nil)

	resp, err := service.LogVisit(context.Background(), "school-1", &dtos.LogVisitReq{
		AircraftID:  testAircraftID,
		VisitDate:   "2025-01-20",
		VisitType:   "Repair",
		Description: "Cowling crack stop-drilled",
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Component != nil {
		t.Error("Expected no component in response")
	}

	var count int64
	db.Model(&gormModels.MaintenanceVisit{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 visit row, got %d", count)
	}
}

func TestVisitService_LogVisit_PublishesEvent(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-9")

	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:      testAircraftID,
		Name:            "Annual",
		ComponentType:   constants.ComponentInspection,
		IntervalType:    duestatus.IntervalTypeHours,
		IntervalHours:   fptr(100),
		CurrentDueHours: fptr(200),
		Status:          constants.ComponentActive,
	})

	var gotStream string
	var gotEvent *common.VisitEvent
	publisher := &mockPublisher{
		enqueueFunc: func(ctx context.Context, streamName string, event *common.VisitEvent) error {
			gotStream = streamName
			gotEvent = event
			return nil
		},
	}

	service := NewVisitService(db, publisher, nil)

	_, err := service.LogVisit(context.Background(), "school-9", &dtos.LogVisitReq{
		AircraftID:  comp.AircraftID,
		ComponentID: &comp.ID,
		VisitDate:   "2025-02-02",
		VisitType:   "Inspection",
		Description: "Annual inspection",
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotStream != constants.VisitEventStream {
		t.Errorf("Expected stream %s, got %s", constants.VisitEventStream, gotStream)
	}
	if gotEvent == nil {
		t.Fatal("Expected event to be published")
	}
	if gotEvent.SchoolID != "school-9" {
		t.Errorf("Expected school-9, got %s", gotEvent.SchoolID)
	}
	if gotEvent.ComponentID == nil || *gotEvent.ComponentID != comp.ID {
		t.Errorf("Expected component %s in event, got %v", comp.ID, gotEvent.ComponentID)
	}
}

func TestVisitService_LogVisit_UnknownComponentRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	service := NewVisitService(db, &mockPublisher{}, nil)

	missing := "99999999-9999-4999-8999-999999999999"
	_, err := service.LogVisit(context.Background(), "school-1", &dtos.LogVisitReq{
		AircraftID:  testAircraftID,
		ComponentID: &missing,
		VisitDate:   "2025-01-20",
		VisitType:   "Repair",
		Description: "Should fail",
	})

	if err == nil {
		t.Fatal("Expected error for unknown component")
	}

	var count int64
	db.Model(&gormModels.MaintenanceVisit{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no visit rows after rollback, got %d", count)
	}
}

func TestVisitService_LogVisit_ForeignSchoolRejected(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:      testAircraftID,
		Name:            "100h inspection",
		ComponentType:   constants.ComponentInspection,
		IntervalType:    duestatus.IntervalTypeHours,
		IntervalHours:   fptr(100),
		CurrentDueHours: fptr(1000),
		Status:          constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	// A different school logging against school-1's aircraft must fail and
	// leave both the component and the visit log untouched.
	_, err := service.LogVisit(context.Background(), "school-2", &dtos.LogVisitReq{
		AircraftID:   comp.AircraftID,
		ComponentID:  &comp.ID,
		VisitDate:    "2025-03-15",
		VisitType:    "Scheduled",
		Description:  "Should be rejected",
		HoursAtVisit: fptr(1005),
	})

	if err == nil {
		t.Fatal("Expected error logging a visit against another school's aircraft")
	}

	var reloaded gormModels.AircraftComponent
	if err := db.Where("id = ?", comp.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("Component not found: %v", err)
	}
	if reloaded.CurrentDueHours == nil || *reloaded.CurrentDueHours != 1000 {
		t.Errorf("Expected component unchanged at 1000, got %v", reloaded.CurrentDueHours)
	}

	var count int64
	db.Model(&gormModels.MaintenanceVisit{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no visit rows, got %d", count)
	}
}

func TestVisitService_LogVisit_ComponentFromOtherAircraftRejected(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")
	otherAircraft := "22222222-2222-4222-8222-222222222222"
	seedAircraft(t, db, otherAircraft, "school-1")

	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:      otherAircraft,
		Name:            "Oil service",
		ComponentType:   constants.ComponentService,
		IntervalType:    duestatus.IntervalTypeHours,
		IntervalHours:   fptr(50),
		CurrentDueHours: fptr(500),
		Status:          constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	_, err := service.LogVisit(context.Background(), "school-1", &dtos.LogVisitReq{
		AircraftID:  testAircraftID,
		ComponentID: &comp.ID,
		VisitDate:   "2025-03-15",
		VisitType:   "Scheduled",
		Description: "Component belongs to another airframe",
	})

	if err == nil {
		t.Fatal("Expected error for component on a different aircraft")
	}
}

func TestVisitService_PreviewNextDue(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:      testAircraftID,
		Name:            "100h inspection",
		ComponentType:   constants.ComponentInspection,
		IntervalType:    duestatus.IntervalTypeBoth,
		IntervalHours:   fptr(100),
		IntervalDays:    iptr(180),
		CurrentDueHours: fptr(1000),
		Status:          constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	preview, err := service.PreviewNextDue(context.Background(), "school-1", comp.ID, "2025-03-15")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if preview.NextDueHours == nil || *preview.NextDueHours != 1100 {
		t.Errorf("Expected next due hours 1100, got %v", preview.NextDueHours)
	}
	want := caldate.New(2025, time.September, 11)
	if preview.NextDueDate == nil || !preview.NextDueDate.Equal(want) {
		t.Errorf("Expected next due date %s, got %v", want, preview.NextDueDate)
	}

	// Preview must not mutate the component.
	var reloaded gormModels.AircraftComponent
	db.Where("id = ?", comp.ID).First(&reloaded)
	if *reloaded.CurrentDueHours != 1000 {
		t.Errorf("Expected component untouched at 1000, got %v", *reloaded.CurrentDueHours)
	}
}

func TestVisitService_PreviewNextDue_ForeignSchoolRejected(t *testing.T) {
	db := setupTestDB(t)
	seedAircraft(t, db, testAircraftID, "school-1")

	comp := seedComponent(t, db, &gormModels.AircraftComponent{
		AircraftID:      testAircraftID,
		Name:            "100h inspection",
		ComponentType:   constants.ComponentInspection,
		IntervalType:    duestatus.IntervalTypeHours,
		IntervalHours:   fptr(100),
		CurrentDueHours: fptr(1000),
		Status:          constants.ComponentActive,
	})

	service := NewVisitService(db, &mockPublisher{}, nil)

	if _, err := service.PreviewNextDue(context.Background(), "school-2", comp.ID, "2025-03-15"); err == nil {
		t.Fatal("Expected error previewing another school's component")
	}
}
