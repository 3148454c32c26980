// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/moneypkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
}

// EntryRepo provides read access to the posting log.
type EntryRepo interface {
	ListByAccount(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Entry, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	entries EntryRepo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, er EntryRepo) *Service {
	return &Service{repo: ar, entries: er}
}

// Create creates and returns an account with the given opening balance.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	arg.Name = strings.TrimSpace(arg.Name)

	if arg.Name == "" {
		l.Info().Msg("empty account name")
		return domain.Account{}, domain.ErrAccountNameRequired
	}

	if !arg.Type.Valid() {
		l.Info().Str("type", string(arg.Type)).Send()
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	if arg.Balance.IsNegative() {
		return domain.Account{}, domain.ErrNegativeBalance
	}

	if !arg.Balance.IsZero() && moneypkg.CheckAmount(arg.Balance) != nil {
		l.Info().Str("balance", arg.Balance.String()).Send()
		return domain.Account{}, domain.ErrInvalidBalance
	}

	return s.repo.Create(ctx, arg)
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns the requested page of accounts.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}

// ListEntries returns the requested page of the account's posting log, newest first.
func (s *Service) ListEntries(ctx context.Context, id int64, pageSize, pageID int32) ([]domain.Entry, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	return s.entries.ListByAccount(ctx, id, pageSize, (pageID-1)*pageSize)
}
