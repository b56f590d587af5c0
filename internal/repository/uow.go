package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
)

// UnitOfWork runs lifecycle transitions inside a single MySQL transaction.
// It implements lifecycle.UnitOfWork: Execute opens a transaction, hands a
// transaction-scoped ledger to fn and commits only when fn succeeds.  Any
// error rolls back every ledger write, so a rejected or half-applied
// transition leaves the database exactly as it was.
type UnitOfWork struct {
	db *sql.DB // underlying connection pool
}

// NewUnitOfWork constructs a UnitOfWork over the given DB handle.
func NewUnitOfWork(db *sql.DB) *UnitOfWork { return &UnitOfWork{db: db} }

// Execute satisfies lifecycle.UnitOfWork.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(lifecycle.Ledger) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&txLedger{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
