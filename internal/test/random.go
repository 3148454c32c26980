package test

import (
	"time"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/randompkg"
	"github.com/go-petr/cash-ledger/pkg/referencepkg"
)

// RandomAccount returns a random account.
func RandomAccount() domain.Account {
	return domain.Account{
		ID:        randompkg.IntBetween(1, 100),
		Name:      randompkg.String(8),
		Type:      randompkg.Pick(domain.AccountTypeCash, domain.AccountTypeBank, domain.AccountTypeSavings, domain.AccountTypeCurrent),
		Balance:   randompkg.MoneyAmountBetween(1000, 10_000),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns a random transaction of the given type and status created by username.
func RandomTransaction(typ domain.TransactionType, status domain.Status, username string) domain.Transaction {
	now := time.Now().Truncate(time.Second).UTC()

	t := domain.Transaction{
		ID:          randompkg.IntBetween(1, 1000),
		Date:        randompkg.DateWithin(30),
		Amount:      randompkg.MoneyAmountBetween(10, 100),
		Type:        typ,
		Status:      status,
		Description: randompkg.String(12),
		ReferenceID: referencepkg.New(typ.ReferencePrefix(), now),
		CreatedBy:   username,
		AccountID:   randompkg.IntBetween(1, 50),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if typ == domain.TypeTransfer {
		to := t.AccountID + 1
		t.ToAccountID = &to
	}

	return t
}
