package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type AircraftRepository struct {
	db *sqlx.DB
}

func NewAircraftRepository(db *sqlx.DB) *AircraftRepository {
	return &AircraftRepository{db}
}

func (r *AircraftRepository) FindByID(ctx context.Context, id string) (*entities.Aircraft, error) {
	var ac entities.Aircraft
	err := r.db.QueryRowxContext(ctx, constants.GetAircraftByID, id).StructScan(&ac)
	if err != nil {
		return nil, err
	}
	return &ac, nil
}

func (r *AircraftRepository) ListBySchool(ctx context.Context, schoolID string) ([]entities.Aircraft, error) {
	var fleet []entities.Aircraft
	err := r.db.SelectContext(ctx, &fleet, constants.ListAircraftBySchool, schoolID)
	if err != nil {
		return nil, err
	}
	return fleet, nil
}

func (r *AircraftRepository) Insert(ctx context.Context, ac *entities.Aircraft) error {
	return r.db.QueryRowxContext(ctx, constants.InsertAircraft,
		ac.SchoolID,
		ac.TailNumber,
		ac.Model,
		ac.CurrentHours,
	).Scan(&ac.ID, &ac.CreatedAt, &ac.UpdatedAt)
}

// UpdateHours sets the meter reading the due calculator works against.
func (r *AircraftRepository) UpdateHours(ctx context.Context, id string, hours float64) (*entities.Aircraft, error) {
	var ac entities.Aircraft
	err := r.db.QueryRowxContext(ctx, constants.UpdateAircraftHours, id, hours).StructScan(&ac)
	if err != nil {
		return nil, err
	}
	return &ac, nil
}
