package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db}
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*entities.Member, error) {
	var m entities.Member
	err := r.db.QueryRowxContext(ctx, constants.GetMemberByID, id).StructScan(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) ListBySchool(ctx context.Context, schoolID string) ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.SelectContext(ctx, &members, constants.ListMembersBySchool, schoolID)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) Insert(ctx context.Context, m *entities.Member) error {
	return r.db.QueryRowxContext(ctx, constants.InsertMember,
		m.SchoolID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Role,
		m.JoinedOn,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MemberRepository) Update(ctx context.Context, m *entities.Member) error {
	return r.db.QueryRowxContext(ctx, constants.UpdateMember,
		m.ID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Role,
		m.IsActive,
	).StructScan(m)
}
