package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/db"
)

// FailOnNthExecUoW returns Err from the FailOn-th write (1-based) made inside
// a transaction, then rolls the transaction back. When Match is set only
// statements containing it are counted, e.g. "UPDATE projects". Reads are
// never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error

	// Execs is the number of counted writes seen by the last transaction.
	Execs int
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	w := &countingTx{DBTX: tx, uow: u}
	u.Execs = 0
	if err := fn(ctx, w); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.uow.Match == "" || strings.Contains(query, c.uow.Match) {
		c.uow.Execs++
		if c.uow.Execs == c.uow.FailOn {
			return nil, c.uow.Err
		}
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
