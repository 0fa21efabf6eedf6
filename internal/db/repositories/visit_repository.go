package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// VisitRepository is read-only; visit logging runs through the GORM
// transaction in the visit service so the component roll-forward and the
// visit row commit together.
type VisitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db}
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*entities.MaintenanceVisit, error) {
	var v entities.MaintenanceVisit
	err := r.db.QueryRowxContext(ctx, constants.GetVisitByID, id).StructScan(&v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VisitRepository) ListByAircraft(ctx context.Context, aircraftID string) ([]entities.MaintenanceVisit, error) {
	var visits []entities.MaintenanceVisit
	err := r.db.SelectContext(ctx, &visits, constants.ListVisitsByAircraft, aircraftID)
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *VisitRepository) ListByComponent(ctx context.Context, componentID string) ([]entities.MaintenanceVisit, error) {
	var visits []entities.MaintenanceVisit
	err := r.db.SelectContext(ctx, &visits, constants.ListVisitsByComponent, componentID)
	if err != nil {
		return nil, err
	}
	return visits, nil
}
