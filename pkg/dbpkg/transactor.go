package dbpkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// Transactor runs units of work inside a single database transaction.
type Transactor struct {
	conn        *sql.DB
	lockTimeout time.Duration
}

// NewTransactor returns Transactor. A positive lockTimeout bounds every row-lock wait
// inside the unit of work.
func NewTransactor(conn *sql.DB, lockTimeout time.Duration) *Transactor {
	return &Transactor{
		conn:        conn,
		lockTimeout: lockTimeout,
	}
}

// WithinTx executes fn within a database transaction.
//
// The transaction is committed if fn returns nil and rolled back otherwise.
// The error returned by fn is passed through unchanged.
func (t *Transactor) WithinTx(ctx context.Context, fn func(tx SQLInterface) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := t.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Warn().Err(err).Msg("rollback")
		}
	}()

	if t.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", t.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if IsBusy(err) {
			return errorspkg.ErrBusy
		}

		return errorspkg.ErrInternal
	}

	return nil
}
