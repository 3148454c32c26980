// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const columns = `id, date, amount, type, status, description, evidence, reference_id,
	balance_before, balance_after, created_by, approved_by,
	account_id, to_account_id, category_id, created_at, updated_at`

const createQuery = `
INSERT INTO transactions (
	date, amount, type, status, description, evidence, reference_id,
	balance_before, balance_after, created_by, approved_by,
	account_id, to_account_id, category_id
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
)
RETURNING ` + columns

// Create inserts t and returns the stored row.
func (r *RepoPGS) Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		t.Date,
		t.Amount,
		t.Type,
		t.Status,
		t.Description,
		t.Evidence,
		t.ReferenceID,
		t.BalanceBefore,
		t.BalanceAfter,
		t.CreatedBy,
		t.ApprovedBy,
		t.AccountID,
		t.ToAccountID,
		t.CategoryID,
	)

	res, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()
		return res, mapWriteError(err)
	}

	return res, nil
}

const getQuery = `
SELECT ` + columns + `
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = `
SELECT ` + columns + `
FROM transactions
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the transaction with the given id and holds its row lock until the
// surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Transaction, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query string, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Int64("transaction_id", id).Send()
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		if dbpkg.IsBusy(err) {
			return t, errorspkg.ErrBusy
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const saveQuery = `
UPDATE transactions
SET
	date = $2,
	amount = $3,
	type = $4,
	status = $5,
	description = $6,
	evidence = $7,
	balance_before = $8,
	balance_after = $9,
	approved_by = $10,
	account_id = $11,
	to_account_id = $12,
	category_id = $13,
	updated_at = now()
WHERE id = $1
RETURNING ` + columns

// Save writes every mutable field of t and returns the stored row.
func (r *RepoPGS) Save(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, saveQuery,
		t.ID,
		t.Date,
		t.Amount,
		t.Type,
		t.Status,
		t.Description,
		t.Evidence,
		t.BalanceBefore,
		t.BalanceAfter,
		t.ApprovedBy,
		t.AccountID,
		t.ToAccountID,
		t.CategoryID,
	)

	res, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Int64("transaction_id", t.ID).Send()
			return res, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return res, mapWriteError(err)
	}

	return res, nil
}

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1
`

// Delete removes the transaction with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsBusy(err) {
			return errorspkg.ErrBusy
		}

		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

const listQuery = `
SELECT ` + columns + `
FROM transactions
WHERE ($1::text = '' OR created_by = $1)
	AND ($2::date IS NULL OR date >= $2::date)
	AND ($3::date IS NULL OR date <= $3::date)
	AND ($4::bigint IS NULL OR account_id = $4 OR to_account_id = $4)
	AND ($5::bigint IS NULL OR category_id = $5)
	AND ($6::text = '' OR type = $6)
	AND ($7::text = '' OR status = $7)
ORDER BY date DESC, created_at DESC, id DESC
LIMIT $8 OFFSET $9
`

// List returns the transactions matching every set filter, newest first.
func (r *RepoPGS) List(ctx context.Context, p domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery,
		p.CreatedBy,
		p.DateFrom,
		p.DateTo,
		p.AccountID,
		p.CategoryID,
		p.Type,
		p.Status,
		p.Limit,
		p.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func mapWriteError(err error) error {
	if dbpkg.IsBusy(err) {
		return errorspkg.ErrBusy
	}

	_, constraint, ok := dbpkg.Violation(err)
	if !ok {
		return errorspkg.ErrInternal
	}

	switch constraint {
	case "transactions_reference_id_key":
		return domain.ErrDuplicateReference
	case "transactions_account_id_fkey", "transactions_to_account_id_fkey":
		return domain.ErrAccountNotFound
	case "transactions_category_id_fkey":
		return domain.ErrCategoryNotFound
	case "transactions_created_by_fkey", "transactions_approved_by_fkey":
		return domain.ErrUserNotFound
	case "transactions_amount_check":
		return domain.ErrInvalidAmount
	case "transactions_type_check":
		return domain.ErrInvalidType
	case "transactions_status_check":
		return domain.ErrInvalidStatus
	}

	return errorspkg.ErrInternal
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (domain.Transaction, error) {
	var t domain.Transaction

	err := s.Scan(
		&t.ID,
		&t.Date,
		&t.Amount,
		&t.Type,
		&t.Status,
		&t.Description,
		&t.Evidence,
		&t.ReferenceID,
		&t.BalanceBefore,
		&t.BalanceAfter,
		&t.CreatedBy,
		&t.ApprovedBy,
		&t.AccountID,
		&t.ToAccountID,
		&t.CategoryID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	return t, err
}
