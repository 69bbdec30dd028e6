package dbx

import (
	"context"
	"database/sql"
)

// Runner scopes a unit of work. The handle passed to fn is only valid for
// the duration of the call; Run commits when fn returns nil and rolls back
// otherwise.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLRunner runs each unit of work in its own database/sql transaction.
type SQLRunner struct {
	db   *sql.DB
	opts *sql.TxOptions
}

// NewSQLRunner runs units of work on db with opts.
func NewSQLRunner(db *sql.DB, opts *sql.TxOptions) *SQLRunner {
	return &SQLRunner{db: db, opts: opts}
}

func (r *SQLRunner) Run(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return WithTx(ctx, r.db, r.opts, fn)
}

// Direct hands out a single shared handle without a transaction. It is meant
// for in-memory repositories and tests where there is nothing to commit.
type Direct struct {
	Handle DBTX
}

func (d Direct) Run(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return fn(ctx, d.Handle)
}
