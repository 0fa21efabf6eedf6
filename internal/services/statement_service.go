package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/dtos"
	"skybound/flightline/internal/models/entities"
)

// LedgerReader is the slice of the ledger repository the statement builder
// needs.
type LedgerReader interface {
	ListEntries(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error)
	SumBefore(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error)
}

// MemberReader resolves the member a statement belongs to.
type MemberReader interface {
	FindByID(ctx context.Context, id string) (*entities.Member, error)
}

// StatementService assembles member account statements: opening balance,
// dated charge/payment lines with a running balance, and share links for
// members without portal access.
type StatementService struct {
	ledger   LedgerReader
	members  MemberReader
	configs  *common.SchoolConfigService
	signer   *common.URLSignerService
	sessions *common.SessionService
	baseURL  string
}

func NewStatementService(
	ledger LedgerReader,
	members MemberReader,
	configs *common.SchoolConfigService,
	signer *common.URLSignerService,
	sessions *common.SessionService,
	baseURL string,
) *StatementService {
	return &StatementService{
		ledger:   ledger,
		members:  members,
		configs:  configs,
		signer:   signer,
		sessions: sessions,
		baseURL:  baseURL,
	}
}

// ShareLinkTTL bounds how long an emailed statement link stays valid.
const ShareLinkTTL = 7 * 24 * time.Hour

// Build assembles the statement for one member over a date range. Charges,
// payments and the opening balance are fetched concurrently.
func (s *StatementService) Build(ctx context.Context, schoolID, memberID, fromStr, toStr string) (*dtos.StatementResponse, error) {
	loc := s.location(ctx, schoolID)

	from, to, err := common.ParseDateRange(fromStr, toStr, loc)
	if err != nil {
		return nil, err
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil || member.SchoolID != schoolID {
		return nil, fmt.Errorf("%s", constants.MsgMemberNotFound)
	}

	var (
		charges  []entities.LedgerEntry
		payments []entities.LedgerEntry
		opening  decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		charges, err = s.ledger.ListEntries(gctx, memberID, constants.LedgerCharge, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.ledger.ListEntries(gctx, memberID, constants.LedgerPayment, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		opening, err = s.ledger.SumBefore(gctx, memberID, from)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	lines := mergeLedger(charges, payments, opening)

	resp := &dtos.StatementResponse{
		MemberID:       memberID,
		MemberName:     member.FirstName + " " + member.LastName,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: opening,
		Lines:          lines,
	}
	for _, e := range charges {
		resp.TotalCharges = resp.TotalCharges.Add(e.Amount)
	}
	for _, e := range payments {
		resp.TotalPayments = resp.TotalPayments.Add(e.Amount)
	}
	if len(lines) > 0 {
		resp.ClosingBalance = lines[len(lines)-1].Balance
	}
	return resp, nil
}

// Share signs a link granting statement access for a fixed range.
func (s *StatementService) Share(ctx context.Context, schoolID string, req *dtos.ShareStatementReq) (*dtos.ShareLinkResponse, error) {
	loc := s.location(ctx, schoolID)
	if _, _, err := common.ParseDateRange(req.From, req.To, loc); err != nil {
		return nil, err
	}

	member, err := s.members.FindByID(ctx, req.MemberID)
	if err != nil || member.SchoolID != schoolID {
		return nil, fmt.Errorf("%s", constants.MsgMemberNotFound)
	}

	token, expiresAt, err := s.signer.GenerateStatementLink(req.MemberID, schoolID, req.From, req.To, ShareLinkTTL)
	if err != nil {
		return nil, err
	}

	return &dtos.ShareLinkResponse{
		URL:       fmt.Sprintf("%s/api/v1/statements/shared?token=%s", s.baseURL, token),
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Redeem validates a share token, mints a viewer session and returns the
// statement it grants.
func (s *StatementService) Redeem(ctx context.Context, token string) (*dtos.StatementResponse, string, error) {
	decoded, err := s.signer.ValidateToken(ctx, token)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := s.sessions.CreateSession(ctx, decoded.MemberID, decoded.SchoolID, decoded.From, decoded.To)
	if err != nil {
		return nil, "", err
	}

	stmt, err := s.Build(ctx, decoded.SchoolID, decoded.MemberID, decoded.From, decoded.To)
	if err != nil {
		return nil, "", err
	}
	return stmt, sessionID, nil
}

func (s *StatementService) location(ctx context.Context, schoolID string) *time.Location {
	if s.configs == nil {
		return time.UTC
	}
	return s.configs.Location(ctx, schoolID)
}

// mergeLedger interleaves the two kind-sorted slices into one date-ordered
// list carrying a running balance. Charges add, payments subtract.
func mergeLedger(charges, payments []entities.LedgerEntry, opening decimal.Decimal) []dtos.StatementLine {
	lines := make([]dtos.StatementLine, 0, len(charges)+len(payments))
	balance := opening

	i, j := 0, 0
	for i < len(charges) || j < len(payments) {
		var next entities.LedgerEntry
		takeCharge := j >= len(payments) ||
			(i < len(charges) && !payments[j].EntryDate.Before(charges[i].EntryDate))
		if takeCharge {
			next = charges[i]
			i++
			balance = balance.Add(next.Amount)
		} else {
			next = payments[j]
			j++
			balance = balance.Sub(next.Amount)
		}

		lines = append(lines, dtos.StatementLine{
			Date:        next.EntryDate,
			Kind:        string(next.Kind),
			Description: next.Description,
			Amount:      next.Amount,
			Balance:     balance,
		})
	}
	return lines
}
