// Package domain provides definitions of all entities.
package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", errorspkg.ErrNotFound)
	// ErrAccountNameExists indicates that an account with the given name already exists.
	ErrAccountNameExists = fmt.Errorf("%w: account name already exists", errorspkg.ErrConflict)
	// ErrInvalidAccountType indicates an unknown account type.
	ErrInvalidAccountType = fmt.Errorf("%w: invalid account type", errorspkg.ErrValidation)
	// ErrNegativeBalance indicates a negative opening balance.
	ErrNegativeBalance = fmt.Errorf("%w: balance must not be negative", errorspkg.ErrValidation)
	// ErrInvalidBalance indicates an opening balance with more than 2 fraction digits.
	ErrInvalidBalance = fmt.Errorf("%w: balance must have at most 2 fraction digits", errorspkg.ErrValidation)
	// ErrAccountNameRequired indicates an empty account name.
	ErrAccountNameRequired = fmt.Errorf("%w: account name is required", errorspkg.ErrValidation)
)

// AccountType is the kind of an account.
type AccountType string

// Supported account types.
const (
	AccountTypeCash    AccountType = "cash"
	AccountTypeBank    AccountType = "bank"
	AccountTypeSavings AccountType = "savings"
	AccountTypeCurrent AccountType = "current"
)

// Valid reports whether the account type is known.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeSavings, AccountTypeCurrent:
		return true
	}

	return false
}

// Account holds the mutable balance of a cash or bank account.
type Account struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}
