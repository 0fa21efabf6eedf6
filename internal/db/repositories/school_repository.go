package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type SchoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db}
}

func (r *SchoolRepository) GetConfigs(ctx context.Context, schoolID string) ([]entities.SchoolConfig, error) {
	var configs []entities.SchoolConfig
	err := r.db.SelectContext(ctx, &configs, constants.GetSchoolConfigs, schoolID)
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *SchoolRepository) UpsertConfig(ctx context.Context, schoolID, key, value string) error {
	_, err := r.db.ExecContext(ctx, constants.UpsertSchoolConfig, schoolID, key, value)
	return err
}

func (r *SchoolRepository) ListSchoolIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, constants.ListSchoolIDs)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
