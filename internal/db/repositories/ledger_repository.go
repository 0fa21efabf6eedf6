package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db}
}

func (r *LedgerRepository) ListEntries(ctx context.Context, memberID string, kind constants.LedgerKind, from, to caldate.Date) ([]entities.LedgerEntry, error) {
	var entries []entities.LedgerEntry
	err := r.db.SelectContext(ctx, &entries, constants.ListLedgerEntries, memberID, kind, from, to)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SumBefore returns the signed balance of all entries dated strictly before
// the given day. Charges count positive, payments negative.
func (r *LedgerRepository) SumBefore(ctx context.Context, memberID string, before caldate.Date) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowxContext(ctx, constants.SumLedgerBefore, memberID, before).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *LedgerRepository) Insert(ctx context.Context, e *entities.LedgerEntry) error {
	return r.db.QueryRowxContext(ctx, constants.InsertLedgerEntry,
		e.MemberID,
		e.EntryDate,
		e.Kind,
		e.Description,
		e.Amount,
		e.Reference,
	).Scan(&e.ID, &e.CreatedAt)
}
