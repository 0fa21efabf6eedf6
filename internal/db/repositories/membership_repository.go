package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db}
}

func (r *MembershipRepository) FindByID(ctx context.Context, id string) (*entities.Membership, error) {
	var m entities.Membership
	err := r.db.QueryRowxContext(ctx, constants.GetMembershipByID, id).StructScan(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) ListByMember(ctx context.Context, memberID string) ([]entities.Membership, error) {
	var ships []entities.Membership
	err := r.db.SelectContext(ctx, &ships, constants.ListMembershipsByMember, memberID)
	if err != nil {
		return nil, err
	}
	return ships, nil
}

func (r *MembershipRepository) ListBySchool(ctx context.Context, schoolID string) ([]entities.Membership, error) {
	var ships []entities.Membership
	err := r.db.SelectContext(ctx, &ships, constants.ListMembershipsBySchool, schoolID)
	if err != nil {
		return nil, err
	}
	return ships, nil
}

func (r *MembershipRepository) Insert(ctx context.Context, m *entities.Membership) error {
	return r.db.QueryRowxContext(ctx, constants.InsertMembership,
		m.MemberID,
		m.Plan,
		m.StartsOn,
		m.EndsOn,
		m.Status,
		m.MonthlyRate,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MembershipRepository) Update(ctx context.Context, m *entities.Membership) error {
	return r.db.QueryRowxContext(ctx, constants.UpdateMembership,
		m.ID,
		m.Plan,
		m.EndsOn,
		m.Status,
		m.MonthlyRate,
	).StructScan(m)
}
