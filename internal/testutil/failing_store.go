package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/telos/internal/db"
)

// FailOnNthExec wraps a DBTX and injects an error on the Nth ExecContext
// call. This drives partial-failure tests for multi-write operations that
// persist edge by edge without a transaction.
//
// ExecContext calls are counted starting at 1. QueryContext and
// QueryRowContext pass through normally.
type FailOnNthExec struct {
	db.DBTX
	FailOn int32
	Err    error

	count atomic.Int32
}

func NewFailOnNthExec(inner db.DBTX, failOn int32, err error) *FailOnNthExec {
	return &FailOnNthExec{DBTX: inner, FailOn: failOn, Err: err}
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// FailOnNthExecUoW is the transactional counterpart, injecting the error
// inside WithinTx so rollback behavior can be asserted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := NewFailOnNthExec(tx, u.FailOn, u.Err)
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}
