// Package auditrepo manages repository layer of the audit log.
package auditrepo

import (
	"context"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates audit log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns audit RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const (
	savepointQuery         = "SAVEPOINT audit_record"
	rollbackSavepointQuery = "ROLLBACK TO SAVEPOINT audit_record"
	releaseSavepointQuery  = "RELEASE SAVEPOINT audit_record"
)

const recordQuery = `
INSERT INTO
    audit_logs (username, action, details)
VALUES
    ($1, $2, $3)
RETURNING id, username, action, details, created_at
`

// Record appends the audit entry.
//
// The insert runs under a savepoint, so a failed insert leaves the surrounding
// transaction usable. Record must be called on a repo built over a transaction.
func (r *RepoPGS) Record(ctx context.Context, arg domain.CreateAuditEntryParams) (domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	var a domain.AuditEntry

	if _, err := r.db.ExecContext(ctx, savepointQuery); err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	row := r.db.QueryRowContext(ctx, recordQuery, arg.Username, arg.Action, arg.Details)

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Action,
		&a.Details,
		&a.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if _, rbErr := r.db.ExecContext(ctx, rollbackSavepointQuery); rbErr != nil {
			l.Error().Err(rbErr).Msg("rollback to savepoint")
		}

		return domain.AuditEntry{}, errorspkg.ErrInternal
	}

	if _, err := r.db.ExecContext(ctx, releaseSavepointQuery); err != nil {
		l.Error().Err(err).Send()
		return domain.AuditEntry{}, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT id, username, action, details, created_at FROM audit_logs
WHERE ($1::text = '' OR username = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// List returns the newest audit entries first, optionally only those of username.
func (r *RepoPGS) List(ctx context.Context, username string, limit, offset int32) ([]domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, username, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.AuditEntry{}

	for rows.Next() {
		var a domain.AuditEntry
		if err := rows.Scan(&a.ID, &a.Username, &a.Action, &a.Details, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
