package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/duestatus"
	"skybound/flightline/internal/models/dtos"
	"skybound/flightline/internal/models/entities"
)

// ComponentStore is the slice of the component repository the service needs.
type ComponentStore interface {
	FindByID(ctx context.Context, id string) (*entities.AircraftComponent, error)
	ListByAircraft(ctx context.Context, aircraftID string) ([]entities.AircraftComponent, error)
	ListActiveBySchool(ctx context.Context, schoolID string) ([]entities.AircraftComponent, error)
	Insert(ctx context.Context, c *entities.AircraftComponent) error
	Update(ctx context.Context, c *entities.AircraftComponent) error
	SetExtension(ctx context.Context, id string, percent *float64) (*entities.AircraftComponent, error)
	Delete(ctx context.Context, id string) error
}

// AircraftReader resolves aircraft rows for ownership checks and meter reads.
type AircraftReader interface {
	FindByID(ctx context.Context, id string) (*entities.Aircraft, error)
	ListBySchool(ctx context.Context, schoolID string) ([]entities.Aircraft, error)
}

// ComponentService owns the maintenance-tracked component lifecycle and the
// due-status views the dashboard renders. Every operation resolves the
// component's aircraft and checks it belongs to the caller's school before
// reading or writing anything.
type ComponentService struct {
	components ComponentStore
	aircraft   AircraftReader
	configs    SchoolLocator
	cache      common.CacheInterface
}

func NewComponentService(
	components ComponentStore,
	aircraft AircraftReader,
	configs SchoolLocator,
	cache common.CacheInterface,
) *ComponentService {
	return &ComponentService{
		components: components,
		aircraft:   aircraft,
		configs:    configs,
		cache:      cache,
	}
}

func componentListCacheKey(aircraftID string) string {
	return string(constants.CachePrefixComponentList) + aircraftID
}

// ownedComponent resolves a component and verifies its aircraft belongs to the
// school. Foreign rows read as not found so the response leaks nothing.
func (s *ComponentService) ownedComponent(ctx context.Context, schoolID, id string) (*entities.AircraftComponent, *entities.Aircraft, error) {
	c, err := s.components.FindByID(ctx, id)
	if err != nil {
		return nil, nil, errors.New(constants.MsgComponentNotFound)
	}
	ac, err := s.aircraft.FindByID(ctx, c.AircraftID)
	if err != nil || ac.SchoolID != schoolID {
		return nil, nil, errors.New(constants.MsgComponentNotFound)
	}
	return c, ac, nil
}

func (s *ComponentService) location(ctx context.Context, schoolID string) *time.Location {
	if s.configs == nil {
		return time.UTC
	}
	return s.configs.Location(ctx, schoolID)
}

// evaluateComponent runs the calculator for one row against the aircraft's
// meter and the school clock.
func evaluateComponent(c *entities.AircraftComponent, currentHours *float64, now time.Time, loc *time.Location) dtos.ComponentDue {
	eval := duestatus.Evaluate(c.DueInput(), currentHours, now, loc)
	return dtos.ComponentDue{
		AircraftComponent: *c,
		CurrentHours:      currentHours,
		Status:            eval.Status,
		DueIn:             eval.DueIn,
		ExtendedDueHours:  eval.ExtendedDueHours,
		ExtendedDueDate:   eval.ExtendedDueDate,
	}
}

// ListForAircraft returns the aircraft's components with evaluated due
// status. The raw rows are cached; evaluation always runs fresh so a meter
// update or the passage of time is never masked by the cache.
func (s *ComponentService) ListForAircraft(ctx context.Context, schoolID, aircraftID string) (*dtos.ComponentListResponse, error) {
	ac, err := s.aircraft.FindByID(ctx, aircraftID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.MsgAircraftNotFound, err)
	}
	if ac.SchoolID != schoolID {
		return nil, errors.New(constants.MsgAircraftNotFound)
	}

	cacheKey := componentListCacheKey(aircraftID)
	comps, found := s.cachedComponents(cacheKey)
	if !found {
		comps, err = s.components.ListByAircraft(ctx, aircraftID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(cacheKey, comps, 5*time.Minute)
	}

	loc := s.location(ctx, schoolID)
	now := time.Now()

	resp := &dtos.ComponentListResponse{AircraftID: aircraftID}
	for i := range comps {
		resp.Components = append(resp.Components, evaluateComponent(&comps[i], ac.CurrentHours, now, loc))
	}
	return resp, nil
}

// Get returns one component with its evaluated due status.
func (s *ComponentService) Get(ctx context.Context, schoolID, id string) (*dtos.ComponentDue, error) {
	c, ac, err := s.ownedComponent(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	loc := s.location(ctx, schoolID)
	row := evaluateComponent(c, ac.CurrentHours, time.Now(), loc)
	return &row, nil
}

// FleetStatus evaluates every active component in the school and returns the
// rows plus a status rollup.
func (s *ComponentService) FleetStatus(ctx context.Context, schoolID string) ([]dtos.ComponentDue, *dtos.FleetSummaryResponse, error) {
	comps, err := s.components.ListActiveBySchool(ctx, schoolID)
	if err != nil {
		return nil, nil, err
	}

	fleet, err := s.aircraft.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, nil, err
	}
	hoursByAircraft := make(map[string]*float64, len(fleet))
	for i := range fleet {
		hoursByAircraft[fleet[i].ID] = fleet[i].CurrentHours
	}

	loc := s.location(ctx, schoolID)
	now := time.Now()

	summary := &dtos.FleetSummaryResponse{TotalComponents: len(comps)}
	rows := make([]dtos.ComponentDue, 0, len(comps))
	for i := range comps {
		row := evaluateComponent(&comps[i], hoursByAircraft[comps[i].AircraftID], now, loc)
		rows = append(rows, row)

		switch row.Status {
		case duestatus.StatusOverdue:
			summary.Overdue++
		case duestatus.StatusWithinExtension:
			summary.WithinExtension++
		case duestatus.StatusDueSoon:
			summary.DueSoon++
		default:
			summary.Healthy++
		}
	}
	return rows, summary, nil
}

// Create registers a component; when the base due values are absent they are
// derived from the last-completed point plus one interval.
func (s *ComponentService) Create(ctx context.Context, schoolID string, req *dtos.CreateComponentReq) (*entities.AircraftComponent, error) {
	ac, err := s.aircraft.FindByID(ctx, req.AircraftID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.MsgAircraftNotFound, err)
	}
	if ac.SchoolID != schoolID {
		return nil, errors.New(constants.MsgAircraftNotFound)
	}

	c := &entities.AircraftComponent{
		AircraftID:         req.AircraftID,
		Name:               req.Name,
		Description:        req.Description,
		ComponentType:      constants.ComponentType(req.ComponentType),
		IntervalType:       duestatus.IntervalType(req.IntervalType),
		IntervalHours:      req.IntervalHours,
		IntervalDays:       req.IntervalDays,
		CurrentDueHours:    req.CurrentDueHours,
		CurrentDueDate:     req.CurrentDueDate,
		LastCompletedHours: req.LastCompletedHours,
		LastCompletedDate:  req.LastCompletedDate,
		Status:             constants.ComponentActive,
		Notes:              req.Notes,
	}
	if req.Priority != nil {
		p := constants.Priority(*req.Priority)
		c.Priority = &p
	}

	if c.CurrentDueHours == nil && c.LastCompletedHours != nil && c.IntervalHours != nil {
		due := *c.LastCompletedHours + *c.IntervalHours
		c.CurrentDueHours = &due
	}
	if c.CurrentDueDate == nil && c.LastCompletedDate != nil && c.IntervalDays != nil {
		due := c.LastCompletedDate.AddDays(*c.IntervalDays)
		c.CurrentDueDate = &due
	}

	if err := s.components.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusInsertFailed, err)
	}

	s.cache.Delete(componentListCacheKey(c.AircraftID))
	return c, nil
}

// Update applies the non-nil fields of the request.
func (s *ComponentService) Update(ctx context.Context, schoolID, id string, req *dtos.UpdateComponentReq) (*entities.AircraftComponent, error) {
	c, _, err := s.ownedComponent(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.IntervalHours != nil {
		c.IntervalHours = req.IntervalHours
	}
	if req.IntervalDays != nil {
		c.IntervalDays = req.IntervalDays
	}
	if req.CurrentDueHours != nil {
		c.CurrentDueHours = req.CurrentDueHours
	}
	if req.CurrentDueDate != nil {
		c.CurrentDueDate = req.CurrentDueDate
	}
	if req.Status != nil {
		c.Status = constants.ComponentStatus(*req.Status)
	}
	if req.Priority != nil {
		p := constants.Priority(*req.Priority)
		c.Priority = &p
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}

	if err := s.components.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusUpdateFailed, err)
	}

	s.cache.Delete(componentListCacheKey(c.AircraftID))
	return c, nil
}

// SetExtension extends (percent set) or reverts (percent nil) the component's
// regulatory extension. The stored base due values never change; the extended
// values are always derived at read time.
func (s *ComponentService) SetExtension(ctx context.Context, schoolID, id string, percent *float64) (*entities.AircraftComponent, error) {
	c, _, err := s.ownedComponent(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if percent != nil {
		if *percent <= 0 {
			return nil, errors.New(constants.MsgInvalidExtension)
		}
		if c.CurrentDueHours == nil && c.CurrentDueDate == nil {
			return nil, errors.New("component has no due point to extend")
		}
	}

	updated, err := s.components.SetExtension(ctx, id, percent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusUpdateFailed, err)
	}

	s.cache.Delete(componentListCacheKey(updated.AircraftID))
	return updated, nil
}

func (s *ComponentService) Delete(ctx context.Context, schoolID, id string) error {
	c, _, err := s.ownedComponent(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if err := s.components.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", constants.StatusDeleteFailed, err)
	}
	s.cache.Delete(componentListCacheKey(c.AircraftID))
	return nil
}

// cachedComponents reads the raw rows back out of the cache. The in-memory
// backend hands the slice back as-is; Redis round-trips values through JSON,
// so anything else is re-decoded. Undecodable values count as a miss.
func (s *ComponentService) cachedComponents(key string) ([]entities.AircraftComponent, bool) {
	val, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	if comps, ok := val.([]entities.AircraftComponent); ok {
		return comps, true
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return nil, false
	}
	var comps []entities.AircraftComponent
	if err := json.Unmarshal(raw, &comps); err != nil {
		return nil, false
	}
	return comps, true
}
