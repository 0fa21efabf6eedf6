package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db}
}

func (r *CredentialRepository) FindByID(ctx context.Context, id string) (*entities.PilotCredential, error) {
	var c entities.PilotCredential
	err := r.db.QueryRowxContext(ctx, constants.GetCredentialByID, id).StructScan(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CredentialRepository) ListByMember(ctx context.Context, memberID string) ([]entities.PilotCredential, error) {
	var creds []entities.PilotCredential
	err := r.db.SelectContext(ctx, &creds, constants.ListCredentialsByMember, memberID)
	if err != nil {
		return nil, err
	}
	return creds, nil
}

func (r *CredentialRepository) Insert(ctx context.Context, c *entities.PilotCredential) error {
	return r.db.QueryRowxContext(ctx, constants.InsertCredential,
		c.MemberID,
		c.CredentialType,
		c.Number,
		c.IssuedOn,
		c.ExpiresOn,
		c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CredentialRepository) Update(ctx context.Context, c *entities.PilotCredential) error {
	return r.db.QueryRowxContext(ctx, constants.UpdateCredential,
		c.ID,
		c.Number,
		c.IssuedOn,
		c.ExpiresOn,
		c.Notes,
	).StructScan(c)
}
