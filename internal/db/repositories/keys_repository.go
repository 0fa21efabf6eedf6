package repositories

import (
	"context"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	err := r.db.QueryRowxContext(ctx, constants.GetStatusByApiKey, key).StructScan(&keyRes)

	if err != nil {
		return nil, err
	}

	return &keyRes, nil
}

func (r *KeysRepo) Insert(ctx context.Context, key, schoolID string) error {
	_, err := r.db.ExecContext(ctx, constants.InsertApiKey, key, schoolID)
	return err
}
