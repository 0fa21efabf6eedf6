package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type ComponentRepository struct {
	db *sqlx.DB
}

func NewComponentRepository(db *sqlx.DB) *ComponentRepository {
	return &ComponentRepository{db}
}

func (r *ComponentRepository) FindByID(ctx context.Context, id string) (*entities.AircraftComponent, error) {
	var c entities.AircraftComponent
	err := r.db.QueryRowxContext(ctx, constants.GetComponentByID, id).StructScan(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComponentRepository) ListByAircraft(ctx context.Context, aircraftID string) ([]entities.AircraftComponent, error) {
	var comps []entities.AircraftComponent
	err := r.db.SelectContext(ctx, &comps, constants.ListComponentsByAircraft, aircraftID)
	if err != nil {
		return nil, err
	}
	return comps, nil
}

func (r *ComponentRepository) ListActiveBySchool(ctx context.Context, schoolID string) ([]entities.AircraftComponent, error) {
	var comps []entities.AircraftComponent
	err := r.db.SelectContext(ctx, &comps, constants.ListActiveComponentsBySchool, schoolID)
	if err != nil {
		return nil, err
	}
	return comps, nil
}

func (r *ComponentRepository) Insert(ctx context.Context, c *entities.AircraftComponent) error {
	return r.db.QueryRowxContext(ctx, constants.InsertComponent,
		c.AircraftID,
		c.Name,
		c.Description,
		c.ComponentType,
		c.IntervalType,
		c.IntervalHours,
		c.IntervalDays,
		c.CurrentDueHours,
		c.CurrentDueDate,
		c.LastCompletedHours,
		c.LastCompletedDate,
		c.Status,
		c.Priority,
		c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ComponentRepository) Update(ctx context.Context, c *entities.AircraftComponent) error {
	return r.db.QueryRowxContext(ctx, constants.UpdateComponent,
		c.ID,
		c.Name,
		c.Description,
		c.IntervalHours,
		c.IntervalDays,
		c.CurrentDueHours,
		c.CurrentDueDate,
		c.Status,
		c.Priority,
		c.Notes,
	).StructScan(c)
}

// SetExtension writes the extension percent only. Passing nil reverts the
// extension; the base due columns are never touched here.
func (r *ComponentRepository) SetExtension(ctx context.Context, id string, percent *float64) (*entities.AircraftComponent, error) {
	var c entities.AircraftComponent
	err := r.db.QueryRowxContext(ctx, constants.SetComponentExtension, id, percent).StructScan(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComponentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, constants.DeleteComponent, id)
	return err
}
