// Package transactionservice manages business logic layer of transactions.
//
// It is the only writer of account balances: every state-changing operation runs inside
// one database transaction that locks the transaction row first and then the touched
// accounts in ascending id order.
package transactionservice

import (
	"context"
	"time"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransactionRepo provides access to stored transactions.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type TransactionRepo interface {
	Create(ctx context.Context, t domain.Transaction) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	GetForUpdate(ctx context.Context, id int64) (domain.Transaction, error)
	Save(ctx context.Context, t domain.Transaction) (domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// AccountRepo provides locked reads and balance writes of accounts.
type AccountRepo interface {
	GetForUpdate(ctx context.Context, id int64) (domain.Account, error)
	SetBalance(ctx context.Context, id int64, balance decimal.Decimal) (domain.Account, error)
}

// EntryRepo appends balance changes to the posting log.
type EntryRepo interface {
	Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error)
}

// AuditRepo records state-changing operations.
type AuditRepo interface {
	Record(ctx context.Context, arg domain.CreateAuditEntryParams) (domain.AuditEntry, error)
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx dbpkg.SQLInterface) error) error
}

// Repos groups the repositories used inside one unit of work.
type Repos struct {
	Transactions TransactionRepo
	Accounts     AccountRepo
	Entries      EntryRepo
	Audit        AuditRepo
}

// RepoFactory builds Repos bound to the given transaction.
type RepoFactory func(tx dbpkg.SQLInterface) Repos

// AuditWarning is reported when an operation committed without its audit entry.
const AuditWarning = "operation committed but its audit entry could not be recorded"

const maxReferenceAttempts = 3

// Service facilitates transaction service layer logic.
type Service struct {
	transactor Transactor
	reads      TransactionRepo
	repos      RepoFactory
	now        func() time.Time
}

// New returns transaction service struct to manage the transaction lifecycle.
//
// reads serves Get and List outside any unit of work, repos builds the repositories
// used inside one.
func New(transactor Transactor, reads TransactionRepo, repos RepoFactory) *Service {
	return &Service{
		transactor: transactor,
		reads:      reads,
		repos:      repos,
		now:        time.Now,
	}
}

// Get returns the transaction with the given id if actor may see it.
func (s *Service) Get(ctx context.Context, id int64, actor domain.Actor) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := s.reads.Get(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	if !domain.CanView(actor, t) {
		l.Info().Str("username", actor.Username).Int64("transaction_id", id).Msg("transaction not visible")
		return domain.Transaction{}, domain.ErrNotOwner
	}

	return t, nil
}

// List returns the transactions visible to actor that match p.
//
// Actors that cannot see every transaction only get their own.
func (s *Service) List(ctx context.Context, actor domain.Actor, p domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if err := p.Validate(); err != nil {
		l.Info().Err(err).Send()
		return nil, err
	}

	if !actor.Role.SeesAll() {
		p.CreatedBy = actor.Username
	}

	return s.reads.List(ctx, p)
}
