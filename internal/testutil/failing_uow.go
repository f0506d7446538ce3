package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/plantmap/internal/db"
)

// FailOnNthExecUoW wraps a real unit of work and makes the Nth ExecContext
// inside the transaction return Err, counted from 1. Reads pass through.
// Tests use it to break a project assignment halfway through its cell
// writes and check that nothing survives.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB)
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execTrap{DBTX: tx, at: u.FailOn, err: u.Err})
	})
}

type execTrap struct {
	db.DBTX
	seen atomic.Int32
	at   int32
	err  error
}

func (e *execTrap) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if e.seen.Add(1) == e.at {
		return nil, e.err
	}
	return e.DBTX.ExecContext(ctx, query, args...)
}
