package entities

import (
	"time"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

type Enrollment struct {
	ID           string                     `db:"id" json:"id"`
	MemberID     string                     `db:"member_id" json:"member_id"`
	InstructorID *string                    `db:"instructor_id" json:"instructor_id,omitempty"`
	CourseCode   string                     `db:"course_code" json:"course_code"`
	CourseTitle  string                     `db:"course_title" json:"course_title"`
	StartedOn    caldate.Date               `db:"started_on" json:"started_on"`
	CompletedOn  *caldate.Date              `db:"completed_on" json:"completed_on,omitempty"`
	Status       constants.EnrollmentStatus `db:"status" json:"status"`
	CreatedAt    time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time                  `db:"updated_at" json:"updated_at"`
}
