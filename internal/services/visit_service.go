package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/duestatus"
	"skybound/flightline/internal/logging"
	"skybound/flightline/internal/models/dtos"
	"skybound/flightline/internal/models/entities"
	gormModels "skybound/flightline/internal/models/gorm"
)

// VisitEventPublisher pushes visit.logged events to the invalidation stream.
type VisitEventPublisher interface {
	Enqueue(ctx context.Context, streamName string, event *common.VisitEvent) error
}

// SchoolLocator resolves a school's timezone for calendar-date decisions.
type SchoolLocator interface {
	Location(ctx context.Context, schoolID string) *time.Location
}

// VisitService logs maintenance visits. Logging a visit against a component
// snapshots the due values in force, rolls the component forward to its next
// cycle and clears any extension, all in one transaction.
type VisitService struct {
	db      *gorm.DB
	queue   VisitEventPublisher
	locator SchoolLocator
}

func NewVisitService(db *gorm.DB, queue VisitEventPublisher, locator SchoolLocator) *VisitService {
	return &VisitService{
		db:      db,
		queue:   queue,
		locator: locator,
	}
}

// PreviewNextDue projects the next cycle for a component as if a visit were
// logged on the given date. Nothing is persisted.
func (svc *VisitService) PreviewNextDue(ctx context.Context, schoolID, componentID, visitDate string) (*dtos.NextDuePreview, error) {
	loc := svc.location(ctx, schoolID)

	date, err := caldate.Parse(visitDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.MsgVisitDateRequired, err)
	}

	var comp gormModels.AircraftComponent
	if err := svc.db.WithContext(ctx).Where("id = ?", componentID).First(&comp).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", constants.MsgComponentNotFound, err)
	}
	if err := svc.verifyAircraftOwnership(ctx, schoolID, comp.AircraftID); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.MsgComponentNotFound, err)
	}

	nextHours, nextDate := duestatus.ProjectNextDue(comp.DueInput(), date)
	return &dtos.NextDuePreview{
		ComponentID:  componentID,
		NextDueHours: nextHours,
		NextDueDate:  nextDate,
	}, nil
}

// LogVisit records a maintenance visit and, when tied to a component, rolls
// that component into its next cycle inside the same transaction.
func (svc *VisitService) LogVisit(ctx context.Context, schoolID string, req *dtos.LogVisitReq) (*dtos.VisitLoggedResponse, error) {
	loc := svc.location(ctx, schoolID)

	visitDate, err := caldate.Parse(req.VisitDate, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.MsgVisitDateRequired, err)
	}

	var outDate *caldate.Date
	if req.DateOutOfMaintenance != nil && *req.DateOutOfMaintenance != "" {
		d, err := caldate.Parse(*req.DateOutOfMaintenance, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date_out_of_maintenance: %w", err)
		}
		outDate = &d
	}

	visit := gormModels.MaintenanceVisit{
		AircraftID:           req.AircraftID,
		ComponentID:          req.ComponentID,
		VisitDate:            visitDate,
		VisitType:            constants.VisitType(req.VisitType),
		Description:          req.Description,
		TotalCost:            req.TotalCost,
		HoursAtVisit:         req.HoursAtVisit,
		Notes:                req.Notes,
		DateOutOfMaintenance: outDate,
	}

	var comp *gormModels.AircraftComponent

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The visit's aircraft must belong to the caller's school.
		var ac gormModels.Aircraft
		if err := tx.Where("id = ? AND school_id = ?", req.AircraftID, schoolID).First(&ac).Error; err != nil {
			return fmt.Errorf("%s: %w", constants.MsgAircraftNotFound, err)
		}

		if req.ComponentID != nil {
			var c gormModels.AircraftComponent
			if err := tx.Where("id = ? AND aircraft_id = ?", *req.ComponentID, req.AircraftID).First(&c).Error; err != nil {
				return fmt.Errorf("%s: %w", constants.MsgComponentNotFound, err)
			}
			comp = &c

			// Snapshot the due values in force at the visit, extension
			// included, for the audit trail.
			visit.ComponentDueHours = duestatus.EffectiveDueHours(c.DueInput())
			visit.ComponentDueDate = duestatus.EffectiveDueDate(c.DueInput())

			// Projection anchors on the BASE due values so an extension
			// consumed this cycle cannot shift the cadence.
			nextHours, nextDate := duestatus.ProjectNextDue(c.DueInput(), visitDate)
			if req.NextDueHours != nil {
				nextHours = req.NextDueHours
			}
			if req.NextDueDate != nil {
				nextDate = req.NextDueDate
			}
			visit.NextDueHours = nextHours
			visit.NextDueDate = nextDate

			// Roll the component forward and retire the extension.
			if nextHours != nil {
				comp.CurrentDueHours = nextHours
			}
			if nextDate != nil {
				comp.CurrentDueDate = nextDate
			}
			comp.LastCompletedHours = req.HoursAtVisit
			lastDone := visitDate
			comp.LastCompletedDate = &lastDone
			comp.ExtensionPercent = nil

			if err := tx.Save(comp).Error; err != nil {
				return fmt.Errorf("failed to roll component forward: %w", err)
			}
		}

		if err := tx.Create(&visit).Error; err != nil {
			return fmt.Errorf("failed to create visit: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	svc.publishEvent(ctx, schoolID, &visit)

	resp := &dtos.VisitLoggedResponse{
		Visit: visitToEntity(&visit),
	}
	if comp != nil {
		row := dtos.ComponentDue{AircraftComponent: componentToEntity(comp)}
		eval := duestatus.Evaluate(comp.DueInput(), nil, time.Now(), loc)
		row.Status = eval.Status
		row.DueIn = eval.DueIn
		resp.Component = &row
	}
	return resp, nil
}

// publishEvent is best effort; a dropped event only delays cache eviction
// until TTL.
func (svc *VisitService) publishEvent(ctx context.Context, schoolID string, visit *gormModels.MaintenanceVisit) {
	if svc.queue == nil {
		return
	}
	event := &common.VisitEvent{
		SchoolID:    schoolID,
		AircraftID:  visit.AircraftID,
		ComponentID: visit.ComponentID,
		VisitID:     visit.ID,
		LoggedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := svc.queue.Enqueue(ctx, constants.VisitEventStream, event); err != nil {
		logging.Warn("failed to publish visit event", "visit_id", visit.ID, "error", err)
	}
}

// verifyAircraftOwnership fails unless the aircraft row carries the school.
func (svc *VisitService) verifyAircraftOwnership(ctx context.Context, schoolID, aircraftID string) error {
	var ac gormModels.Aircraft
	return svc.db.WithContext(ctx).
		Where("id = ? AND school_id = ?", aircraftID, schoolID).
		First(&ac).Error
}

func (svc *VisitService) location(ctx context.Context, schoolID string) *time.Location {
	if svc.locator == nil {
		return time.UTC
	}
	return svc.locator.Location(ctx, schoolID)
}

func visitToEntity(v *gormModels.MaintenanceVisit) entities.MaintenanceVisit {
	return entities.MaintenanceVisit{
		ID:                   v.ID,
		AircraftID:           v.AircraftID,
		ComponentID:          v.ComponentID,
		VisitDate:            v.VisitDate,
		VisitType:            v.VisitType,
		Description:          v.Description,
		TotalCost:            v.TotalCost,
		HoursAtVisit:         v.HoursAtVisit,
		Notes:                v.Notes,
		DateOutOfMaintenance: v.DateOutOfMaintenance,
		ComponentDueHours:    v.ComponentDueHours,
		ComponentDueDate:     v.ComponentDueDate,
		NextDueHours:         v.NextDueHours,
		NextDueDate:          v.NextDueDate,
		CreatedAt:            v.CreatedAt,
	}
}

func componentToEntity(c *gormModels.AircraftComponent) entities.AircraftComponent {
	return entities.AircraftComponent{
		ID:                 c.ID,
		AircraftID:         c.AircraftID,
		Name:               c.Name,
		Description:        c.Description,
		ComponentType:      c.ComponentType,
		IntervalType:       c.IntervalType,
		IntervalHours:      c.IntervalHours,
		IntervalDays:       c.IntervalDays,
		CurrentDueHours:    c.CurrentDueHours,
		CurrentDueDate:     c.CurrentDueDate,
		LastCompletedHours: c.LastCompletedHours,
		LastCompletedDate:  c.LastCompletedDate,
		ExtensionPercent:   c.ExtensionPercent,
		Status:             c.Status,
		Priority:           c.Priority,
		Notes:              c.Notes,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
