package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/db/repositories"
	"skybound/flightline/internal/models/dtos"
	"skybound/flightline/internal/models/entities"
)

// MemberService owns the people side of the school: members, memberships,
// pilot credentials and course enrollments.
type MemberService struct {
	members     *repositories.MemberRepository
	memberships *repositories.MembershipRepository
	credentials *repositories.CredentialRepository
	enrollments *repositories.EnrollmentRepository
	configs     *common.SchoolConfigService
}

func NewMemberService(
	members *repositories.MemberRepository,
	memberships *repositories.MembershipRepository,
	credentials *repositories.CredentialRepository,
	enrollments *repositories.EnrollmentRepository,
	configs *common.SchoolConfigService,
) *MemberService {
	return &MemberService{
		members:     members,
		memberships: memberships,
		credentials: credentials,
		enrollments: enrollments,
		configs:     configs,
	}
}

func (s *MemberService) List(ctx context.Context, schoolID string) ([]entities.Member, error) {
	return s.members.ListBySchool(ctx, schoolID)
}

func (s *MemberService) Get(ctx context.Context, schoolID, id string) (*entities.Member, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil || m.SchoolID != schoolID {
		return nil, errors.New(constants.MsgMemberNotFound)
	}
	return m, nil
}

// Profile assembles the member detail page: the member row plus their
// memberships, credentials and enrollments, fetched concurrently.
func (s *MemberService) Profile(ctx context.Context, schoolID, id string) (*dtos.MemberProfileResponse, error) {
	member, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	resp := &dtos.MemberProfileResponse{Member: *member}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ships, err := s.memberships.ListByMember(gctx, id)
		if err != nil {
			return fmt.Errorf("memberships: %w", err)
		}
		resp.Memberships = ships
		return nil
	})
	g.Go(func() error {
		creds, err := s.credentials.ListByMember(gctx, id)
		if err != nil {
			return fmt.Errorf("credentials: %w", err)
		}
		resp.Credentials = creds
		return nil
	})
	g.Go(func() error {
		rolls, err := s.enrollments.ListByMember(gctx, id)
		if err != nil {
			return fmt.Errorf("enrollments: %w", err)
		}
		resp.Enrollments = rolls
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *MemberService) Create(ctx context.Context, schoolID string, req *dtos.CreateMemberReq) (*entities.Member, error) {
	loc := s.configs.Location(ctx, schoolID)

	joined := caldate.FromTime(time.Now(), loc)
	if req.JoinedOn != nil && *req.JoinedOn != "" {
		d, err := caldate.Parse(*req.JoinedOn, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid joined_on: %w", err)
		}
		joined = d
	}

	m := &entities.Member{
		SchoolID:  schoolID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      constants.MemberRole(req.Role),
		JoinedOn:  joined,
	}
	if err := s.members.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusInsertFailed, err)
	}
	return m, nil
}

func (s *MemberService) Update(ctx context.Context, schoolID, id string, req *dtos.UpdateMemberReq) (*entities.Member, error) {
	m, err := s.Get(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		m.LastName = *req.LastName
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Phone != nil {
		m.Phone = req.Phone
	}
	if req.Role != nil {
		m.Role = constants.MemberRole(*req.Role)
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.members.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusUpdateFailed, err)
	}
	return m, nil
}

func (s *MemberService) ListMemberships(ctx context.Context, schoolID string) ([]entities.Membership, error) {
	return s.memberships.ListBySchool(ctx, schoolID)
}

func (s *MemberService) AddMembership(ctx context.Context, schoolID string, req *dtos.CreateMembershipReq) (*entities.Membership, error) {
	if _, err := s.Get(ctx, schoolID, req.MemberID); err != nil {
		return nil, err
	}

	loc := s.configs.Location(ctx, schoolID)
	starts, err := caldate.Parse(req.StartsOn, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_on: %w", err)
	}

	m := &entities.Membership{
		MemberID:    req.MemberID,
		Plan:        req.Plan,
		StartsOn:    starts,
		Status:      constants.MembershipActive,
		MonthlyRate: req.MonthlyRate,
	}
	if req.EndsOn != nil && *req.EndsOn != "" {
		ends, err := caldate.Parse(*req.EndsOn, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid ends_on: %w", err)
		}
		m.EndsOn = &ends
	}

	if err := s.memberships.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusInsertFailed, err)
	}
	return m, nil
}

func (s *MemberService) UpdateMembership(ctx context.Context, schoolID, id string, req *dtos.UpdateMembershipReq) (*entities.Membership, error) {
	m, err := s.memberships.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New(constants.StatusNotFound)
	}
	if _, err := s.Get(ctx, schoolID, m.MemberID); err != nil {
		return nil, err
	}

	loc := s.configs.Location(ctx, schoolID)
	if req.Plan != nil {
		m.Plan = *req.Plan
	}
	if req.EndsOn != nil {
		ends, err := caldate.Parse(*req.EndsOn, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid ends_on: %w", err)
		}
		m.EndsOn = &ends
	}
	if req.Status != nil {
		m.Status = constants.MembershipStatus(*req.Status)
	}
	if req.MonthlyRate != nil {
		m.MonthlyRate = *req.MonthlyRate
	}

	if err := s.memberships.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusUpdateFailed, err)
	}
	return m, nil
}

func (s *MemberService) AddCredential(ctx context.Context, schoolID string, req *dtos.CreateCredentialReq) (*entities.PilotCredential, error) {
	if _, err := s.Get(ctx, schoolID, req.MemberID); err != nil {
		return nil, err
	}

	loc := s.configs.Location(ctx, schoolID)
	c := &entities.PilotCredential{
		MemberID:       req.MemberID,
		CredentialType: constants.CredentialType(req.CredentialType),
		Number:         req.Number,
		Notes:          req.Notes,
	}
	var err error
	if c.IssuedOn, err = parseOptionalDate(req.IssuedOn, loc); err != nil {
		return nil, fmt.Errorf("invalid issued_on: %w", err)
	}
	if c.ExpiresOn, err = parseOptionalDate(req.ExpiresOn, loc); err != nil {
		return nil, fmt.Errorf("invalid expires_on: %w", err)
	}

	if err := s.credentials.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusInsertFailed, err)
	}
	return c, nil
}

func (s *MemberService) UpdateCredential(ctx context.Context, schoolID, id string, req *dtos.UpdateCredentialReq) (*entities.PilotCredential, error) {
	c, err := s.credentials.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New(constants.StatusNotFound)
	}
	if _, err := s.Get(ctx, schoolID, c.MemberID); err != nil {
		return nil, err
	}

	loc := s.configs.Location(ctx, schoolID)
	if req.Number != nil {
		c.Number = req.Number
	}
	if req.IssuedOn != nil {
		if c.IssuedOn, err = parseOptionalDate(req.IssuedOn, loc); err != nil {
			return nil, fmt.Errorf("invalid issued_on: %w", err)
		}
	}
	if req.ExpiresOn != nil {
		if c.ExpiresOn, err = parseOptionalDate(req.ExpiresOn, loc); err != nil {
			return nil, fmt.Errorf("invalid expires_on: %w", err)
		}
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}

	if err := s.credentials.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusUpdateFailed, err)
	}
	return c, nil
}

// ListCredentials returns a member's credentials; expiry banners run the
// calendar classifier against each expiry date on the client side.
func (s *MemberService) ListCredentials(ctx context.Context, schoolID, memberID string) ([]entities.PilotCredential, error) {
	if _, err := s.Get(ctx, schoolID, memberID); err != nil {
		return nil, err
	}
	return s.credentials.ListByMember(ctx, memberID)
}

func (s *MemberService) ListEnrollments(ctx context.Context, schoolID string) ([]entities.Enrollment, error) {
	return s.enrollments.ListBySchool(ctx, schoolID)
}

func (s *MemberService) AddEnrollment(ctx context.Context, schoolID string, req *dtos.CreateEnrollmentReq) (*entities.Enrollment, error) {
	if _, err := s.Get(ctx, schoolID, req.MemberID); err != nil {
		return nil, err
	}
	if req.InstructorID != nil {
		instructor, err := s.Get(ctx, schoolID, *req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("instructor: %w", err)
		}
		if instructor.Role != constants.RoleInstructor && !instructor.Role.StaffLevel() {
			return nil, errors.New("assigned instructor does not hold the instructor role")
		}
	}

	loc := s.configs.Location(ctx, schoolID)
	started, err := caldate.Parse(req.StartedOn, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid started_on: %w", err)
	}

	e := &entities.Enrollment{
		MemberID:     req.MemberID,
		InstructorID: req.InstructorID,
		CourseCode:   req.CourseCode,
		CourseTitle:  req.CourseTitle,
		StartedOn:    started,
		Status:       constants.EnrollmentActive,
	}
	if err := s.enrollments.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusInsertFailed, err)
	}
	return e, nil
}

func (s *MemberService) UpdateEnrollment(ctx context.Context, schoolID, id string, req *dtos.UpdateEnrollmentReq) (*entities.Enrollment, error) {
	e, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New(constants.StatusNotFound)
	}
	if _, err := s.Get(ctx, schoolID, e.MemberID); err != nil {
		return nil, err
	}

	loc := s.configs.Location(ctx, schoolID)
	if req.Status != nil {
		e.Status = constants.EnrollmentStatus(*req.Status)
	}
	if req.CompletedOn != nil {
		if e.CompletedOn, err = parseOptionalDate(req.CompletedOn, loc); err != nil {
			return nil, fmt.Errorf("invalid completed_on: %w", err)
		}
	}
	if e.Status == constants.EnrollmentCompleted && e.CompletedOn == nil {
		done := caldate.FromTime(time.Now(), loc)
		e.CompletedOn = &done
	}

	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.StatusUpdateFailed, err)
	}
	return e, nil
}

func parseOptionalDate(s *string, loc *time.Location) (*caldate.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := caldate.Parse(*s, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
