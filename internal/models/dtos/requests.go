package dtos

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

type CreateAircraftReq struct {
	TailNumber   string   `json:"tail_number" validate:"required,min=2,max=12"`
	Model        string   `json:"model" validate:"required"`
	CurrentHours *float64 `json:"current_hours" validate:"omitempty,gte=0"`
}

func (r *CreateAircraftReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type UpdateAircraftHoursReq struct {
	CurrentHours float64 `json:"current_hours" validate:"gte=0"`
}

func (r *UpdateAircraftHoursReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type CreateComponentReq struct {
	AircraftID         string        `json:"aircraft_id" validate:"required,uuid4"`
	Name               string        `json:"name" validate:"required"`
	Description        *string       `json:"description"`
	ComponentType      string        `json:"component_type" validate:"required,oneof=battery inspection service engine fuselage avionics elt propeller landing_gear other"`
	IntervalType       string        `json:"interval_type" validate:"required,oneof=HOURS CALENDAR BOTH"`
	IntervalHours      *float64      `json:"interval_hours" validate:"omitempty,gt=0"`
	IntervalDays       *int          `json:"interval_days" validate:"omitempty,gt=0"`
	CurrentDueHours    *float64      `json:"current_due_hours" validate:"omitempty,gte=0"`
	CurrentDueDate     *caldate.Date `json:"current_due_date"`
	LastCompletedHours *float64      `json:"last_completed_hours"`
	LastCompletedDate  *caldate.Date `json:"last_completed_date"`
	Priority           *string       `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Notes              *string       `json:"notes"`
}

// Validate checks the tag rules plus the conditional interval invariant:
// HOURS needs interval_hours, CALENDAR needs interval_days, BOTH needs both.
func (r *CreateComponentReq) Validate() error {
	v := validator.New()
	if err := v.Struct(r); err != nil {
		return err
	}
	needHours := r.IntervalType == "HOURS" || r.IntervalType == "BOTH"
	needDays := r.IntervalType == "CALENDAR" || r.IntervalType == "BOTH"
	if needHours && r.IntervalHours == nil {
		return errors.New(constants.MsgIntervalHoursMissing)
	}
	if needDays && r.IntervalDays == nil {
		return errors.New(constants.MsgIntervalDaysMissing)
	}
	return nil
}

// UpdateComponentReq carries partial edits; nil means leave unchanged.
// Extension changes go through SetExtensionReq, never through here.
type UpdateComponentReq struct {
	Name            *string       `json:"name"`
	Description     *string       `json:"description"`
	IntervalHours   *float64      `json:"interval_hours" validate:"omitempty,gt=0"`
	IntervalDays    *int          `json:"interval_days" validate:"omitempty,gt=0"`
	CurrentDueHours *float64      `json:"current_due_hours" validate:"omitempty,gte=0"`
	CurrentDueDate  *caldate.Date `json:"current_due_date"`
	Status          *string       `json:"status" validate:"omitempty,oneof=active inactive removed"`
	Priority        *string       `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Notes           *string       `json:"notes"`
}

func (r *UpdateComponentReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

// SetExtensionReq extends (percent set) or reverts (percent null) a
// component's regulatory extension.
type SetExtensionReq struct {
	Percent *float64 `json:"percent" validate:"omitempty,gt=0,lte=100"`
}

func (r *SetExtensionReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type LogVisitReq struct {
	AircraftID           string           `json:"aircraft_id" validate:"required,uuid4"`
	ComponentID          *string          `json:"component_id" validate:"omitempty,uuid4"`
	VisitDate            string           `json:"visit_date" validate:"required"`
	VisitType            string           `json:"visit_type" validate:"required,oneof=Scheduled Unscheduled Inspection Repair Modification"`
	Description          string           `json:"description" validate:"required"`
	TotalCost            *decimal.Decimal `json:"total_cost"`
	HoursAtVisit         *float64         `json:"hours_at_visit" validate:"omitempty,gte=0"`
	Notes                *string          `json:"notes"`
	DateOutOfMaintenance *string          `json:"date_out_of_maintenance"`

	// Optional overrides for the projected next cycle. When absent the
	// projector's defaults are persisted.
	NextDueHours *float64      `json:"next_due_hours" validate:"omitempty,gte=0"`
	NextDueDate  *caldate.Date `json:"next_due_date"`
}

func (r *LogVisitReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type CreateMemberReq struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role" validate:"required,oneof=student instructor staff admin"`
	JoinedOn  *string `json:"joined_on"`
}

func (r *CreateMemberReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type UpdateMemberReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role" validate:"omitempty,oneof=student instructor staff admin"`
	IsActive  *bool   `json:"is_active"`
}

func (r *UpdateMemberReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type CreateMembershipReq struct {
	MemberID    string          `json:"member_id" validate:"required,uuid4"`
	Plan        string          `json:"plan" validate:"required"`
	StartsOn    string          `json:"starts_on" validate:"required"`
	EndsOn      *string         `json:"ends_on"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
}

func (r *CreateMembershipReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type UpdateMembershipReq struct {
	Plan        *string          `json:"plan"`
	EndsOn      *string          `json:"ends_on"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active lapsed cancelled"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate"`
}

func (r *UpdateMembershipReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type CreateCredentialReq struct {
	MemberID       string  `json:"member_id" validate:"required,uuid4"`
	CredentialType string  `json:"credential_type" validate:"required,oneof=medical flight_review rating solo_endorsement"`
	Number         *string `json:"number"`
	IssuedOn       *string `json:"issued_on"`
	ExpiresOn      *string `json:"expires_on"`
	Notes          *string `json:"notes"`
}

func (r *CreateCredentialReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type UpdateCredentialReq struct {
	Number    *string `json:"number"`
	IssuedOn  *string `json:"issued_on"`
	ExpiresOn *string `json:"expires_on"`
	Notes     *string `json:"notes"`
}

func (r *UpdateCredentialReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type CreateEnrollmentReq struct {
	MemberID     string  `json:"member_id" validate:"required,uuid4"`
	InstructorID *string `json:"instructor_id" validate:"omitempty,uuid4"`
	CourseCode   string  `json:"course_code" validate:"required"`
	CourseTitle  string  `json:"course_title" validate:"required"`
	StartedOn    string  `json:"started_on" validate:"required"`
}

func (r *CreateEnrollmentReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type UpdateEnrollmentReq struct {
	Status      *string `json:"status" validate:"omitempty,oneof=active completed withdrawn"`
	CompletedOn *string `json:"completed_on"`
}

func (r *UpdateEnrollmentReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

type ShareStatementReq struct {
	MemberID string `json:"member_id" validate:"required,uuid4"`
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
}

func (r *ShareStatementReq) Validate() error {
	v := validator.New()
	return v.Struct(r)
}
