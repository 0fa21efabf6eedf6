package repositories

import (
	"context"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db}
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*entities.Enrollment, error) {
	var e entities.Enrollment
	err := r.db.QueryRowxContext(ctx, constants.GetEnrollmentByID, id).StructScan(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListBySchool(ctx context.Context, schoolID string) ([]entities.Enrollment, error) {
	var rolls []entities.Enrollment
	err := r.db.SelectContext(ctx, &rolls, constants.ListEnrollmentsBySchool, schoolID)
	if err != nil {
		return nil, err
	}
	return rolls, nil
}

func (r *EnrollmentRepository) ListByMember(ctx context.Context, memberID string) ([]entities.Enrollment, error) {
	var rolls []entities.Enrollment
	err := r.db.SelectContext(ctx, &rolls, constants.ListEnrollmentsByMember, memberID)
	if err != nil {
		return nil, err
	}
	return rolls, nil
}

func (r *EnrollmentRepository) Insert(ctx context.Context, e *entities.Enrollment) error {
	return r.db.QueryRowxContext(ctx, constants.InsertEnrollment,
		e.MemberID,
		e.InstructorID,
		e.CourseCode,
		e.CourseTitle,
		e.StartedOn,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EnrollmentRepository) Update(ctx context.Context, e *entities.Enrollment) error {
	return r.db.QueryRowxContext(ctx, constants.UpdateEnrollment,
		e.ID,
		e.Status,
		e.CompletedOn,
	).StructScan(e)
}
