package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"
)

// Mock LedgerReader
type mockLedger struct {
	listEntriesFunc func(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error)
	sumBeforeFunc   func(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error)
}

func (m *mockLedger) ListEntries(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error) {
	return m.listEntriesFunc(ctx, memberID, kind, from, to)
}

func (m *mockLedger) SumBefore(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error) {
	return m.sumBeforeFunc(ctx, memberID, before)
}

// Mock MemberReader
type mockMembers struct {
	findByIDFunc func(ctx context.Context, id string) (*entities.Member, error)
}

func (m *mockMembers) FindByID(ctx context.Context, id string) (*entities.Member, error) {
	return m.findByIDFunc(ctx, id)
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testMember() *entities.Member {
	return &entities.Member{
		ID:        "member-1",
		SchoolID:  "school-1",
		FirstName: "Dana",
		LastName:  "Whitfield",
		Role:      constants.RoleStudent,
	}
}

func TestStatementService_Build(t *testing.T) {
	charges := []entities.LedgerEntry{
		{EntryDate: caldate.New(2025, time.June, 3), Kind: constants.LedgerCharge, Description: "C172 rental 1.5h", Amount: money("270.00")},
		{EntryDate: caldate.New(2025, time.June, 20), Kind: constants.LedgerCharge, Description: "Instructor 1.5h", Amount: money("97.50")},
	}
	payments := []entities.LedgerEntry{
		{EntryDate: caldate.New(2025, time.June, 10), Kind: constants.LedgerPayment, Description: "Card payment", Amount: money("300.00")},
	}

	ledger := &mockLedger{
		listEntriesFunc: func(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error) {
			if kind == constants.LedgerCharge {
				return charges, nil
			}
			return payments, nil
		},
		sumBeforeFunc: func(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error) {
			return money("150.00"), nil
		},
	}
	members := &mockMembers{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Member, error) {
			return testMember(), nil
		},
	}

	service := NewStatementService(ledger, members, nil, nil, nil, "http://localhost:8080")

	stmt, err := service.Build(context.Background(), "school-1", "member-1", "2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !stmt.OpeningBalance.Equal(money("150.00")) {
		t.Errorf("Expected opening 150.00, got %s", stmt.OpeningBalance)
	}
	if !stmt.TotalCharges.Equal(money("367.50")) {
		t.Errorf("Expected charges 367.50, got %s", stmt.TotalCharges)
	}
	if !stmt.TotalPayments.Equal(money("300.00")) {
		t.Errorf("Expected payments 300.00, got %s", stmt.TotalPayments)
	}

	if len(stmt.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(stmt.Lines))
	}

	// Date order: charge Jun 3, payment Jun 10, charge Jun 20.
	if stmt.Lines[0].Description != "C172 rental 1.5h" {
		t.Errorf("Unexpected first line: %s", stmt.Lines[0].Description)
	}
	if stmt.Lines[1].Kind != string(constants.LedgerPayment) {
		t.Errorf("Expected payment second, got %s", stmt.Lines[1].Kind)
	}

	// Running balance: 150 + 270 = 420, - 300 = 120, + 97.50 = 217.50.
	if !stmt.Lines[1].Balance.Equal(money("120.00")) {
		t.Errorf("Expected mid balance 120.00, got %s", stmt.Lines[1].Balance)
	}
	if !stmt.ClosingBalance.Equal(money("217.50")) {
		t.Errorf("Expected closing 217.50, got %s", stmt.ClosingBalance)
	}
}

func TestStatementService_Build_EmptyRange(t *testing.T) {
	ledger := &mockLedger{
		listEntriesFunc: func(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error) {
			return nil, nil
		},
		sumBeforeFunc: func(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error) {
			return money("42.00"), nil
		},
	}
	members := &mockMembers{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Member, error) {
			return testMember(), nil
		},
	}

	service := NewStatementService(ledger, members, nil, nil, nil, "")

	stmt, err := service.Build(context.Background(), "school-1", "member-1", "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(stmt.Lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(stmt.Lines))
	}
	if !stmt.ClosingBalance.Equal(stmt.OpeningBalance) {
		t.Error("Expected closing to equal opening for empty range")
	}
}

func TestStatementService_Build_InvertedRange(t *testing.T) {
	service := NewStatementService(&mockLedger{}, &mockMembers{}, nil, nil, nil, "")

	_, err := service.Build(context.Background(), "school-1", "member-1", "2025-06-30", "2025-06-01")
	if err == nil {
		t.Error("Expected error for inverted range")
	}
}

func TestStatementService_Build_WrongSchool(t *testing.T) {
	members := &mockMembers{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Member, error) {
			m := testMember()
			m.SchoolID = "other-school"
			return m, nil
		},
	}

	service := NewStatementService(&mockLedger{}, members, nil, nil, nil, "")

	_, err := service.Build(context.Background(), "school-1", "member-1", "2025-06-01", "2025-06-30")
	if err == nil {
		t.Error("Expected error for member outside school")
	}
}

func TestStatementService_Build_LedgerError(t *testing.T) {
	ledger := &mockLedger{
		listEntriesFunc: func(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error) {
			return nil, errors.New("connection reset")
		},
		sumBeforeFunc: func(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error) {
			return decimal.Zero, nil
		},
	}
	members := &mockMembers{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Member, error) {
			return testMember(), nil
		},
	}

	service := NewStatementService(ledger, members, nil, nil, nil, "")

	_, err := service.Build(context.Background(), "school-1", "member-1", "2025-06-01", "2025-06-30")
	if err == nil {
		t.Error("Expected ledger error to surface")
	}
}

func TestMergeLedger_SameDayChargeFirst(t *testing.T) {
	day := caldate.New(2025, time.July, 4)
	charges := []entities.LedgerEntry{
		{EntryDate: day, Kind: constants.LedgerCharge, Description: "Rental", Amount: money("100.00")},
	}
	payments := []entities.LedgerEntry{
		{EntryDate: day, Kind: constants.LedgerPayment, Description: "Cash", Amount: money("100.00")},
	}

	lines := mergeLedger(charges, payments, decimal.Zero)

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Kind != string(constants.LedgerCharge) {
		t.Error("Expected same-day charge to come before payment")
	}
	if !lines[1].Balance.Equal(decimal.Zero) {
		t.Errorf("Expected final balance zero, got %s", lines[1].Balance)
	}
}
