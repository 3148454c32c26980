// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/cash-ledger/internal/accountrepo"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/transactionrepo"
	"github.com/go-petr/cash-ledger/internal/userrepo"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"
	"github.com/go-petr/cash-ledger/pkg/passpkg"
	"github.com/go-petr/cash-ledger/pkg/randompkg"
	"github.com/go-petr/cash-ledger/pkg/referencepkg"
	"github.com/shopspring/decimal"
)

// SeedUser creates a random user with the given role.
func SeedUser(t *testing.T, db dbpkg.SQLInterface, role domain.Role) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Role:           role,
	}

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates an account with the given opening balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, balance string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		Name:    "acc-" + randompkg.String(12),
		Type:    domain.AccountTypeBank,
		Balance: decimal.RequireFromString(balance),
	}

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedTransaction stores a transaction with the given status directly, bypassing the engine.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, tx domain.Transaction) domain.Transaction {
	t.Helper()

	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if tx.Status == "" {
		tx.Status = domain.StatusPending
	}

	if tx.ReferenceID == "" {
		tx.ReferenceID = referencepkg.New(tx.Type.ReferencePrefix(), time.Now())
	}

	stored, err := transactionrepo.NewRepoPGS(db).Create(context.Background(), tx)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", tx, err)
	}

	return stored
}

// AccountBalance reads the current balance of the account.
func AccountBalance(t *testing.T, db dbpkg.SQLInterface, id int64) decimal.Decimal {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("accountRepo.Get(context.Background(), %d) returned error: %v", id, err)
	}

	return account.Balance
}
