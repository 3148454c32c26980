package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/moneypkg"
	"github.com/go-petr/cash-ledger/pkg/referencepkg"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", errorspkg.ErrNotFound)
	// ErrCategoryNotFound indicates that the category is not found.
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", errorspkg.ErrNotFound)
	// ErrInvalidAmount indicates an amount that is not positive or has more than 2 fraction digits.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive with at most 2 fraction digits", errorspkg.ErrValidation)
	// ErrInvalidType indicates an unknown transaction type.
	ErrInvalidType = fmt.Errorf("%w: invalid transaction type", errorspkg.ErrValidation)
	// ErrInvalidStatus indicates an unknown transaction status.
	ErrInvalidStatus = fmt.Errorf("%w: invalid transaction status", errorspkg.ErrValidation)
	// ErrMissingDate indicates that the transaction date is not set.
	ErrMissingDate = fmt.Errorf("%w: date is required", errorspkg.ErrValidation)
	// ErrMissingAccount indicates that the source account is not set.
	ErrMissingAccount = fmt.Errorf("%w: account is required", errorspkg.ErrValidation)
	// ErrTransferTarget indicates a transfer without a distinct destination account.
	ErrTransferTarget = fmt.Errorf("%w: transfer requires a destination account different from the source", errorspkg.ErrValidation)
	// ErrUnexpectedTarget indicates a destination account on a non-transfer transaction.
	ErrUnexpectedTarget = fmt.Errorf("%w: only transfers may have a destination account", errorspkg.ErrValidation)
	// ErrDuplicateReference indicates that the reference id is already used.
	ErrDuplicateReference = fmt.Errorf("%w: reference id already exists", errorspkg.ErrConflict)
	// ErrDestinationMissing indicates that the destination account of a transfer no longer exists.
	ErrDestinationMissing = fmt.Errorf("%w: destination account no longer exists, transfer cannot be reversed", errorspkg.ErrConflict)
	// ErrInsufficientFunds indicates that the balance would go negative.
	ErrInsufficientFunds = fmt.Errorf("%w: account balance is lower than the amount", errorspkg.ErrInsufficientFunds)
)

// TransactionType is the kind of a transaction.
type TransactionType string

// Transaction types.
const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether the type is known.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}

	return false
}

// ReferencePrefix returns the reference id prefix of the type.
func (t TransactionType) ReferencePrefix() string {
	if t == TypeTransfer {
		return referencepkg.PrefixTransfer
	}

	return referencepkg.PrefixDefault
}

// Status is the approval status of a transaction.
type Status string

// Transaction statuses.
const (
	StatusPending          Status = "pending"
	StatusWaitingApprovalA Status = "waiting_approval_a"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusVoid             Status = "void"
)

// Valid reports whether the status is known.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusWaitingApprovalA, StatusApproved, StatusRejected, StatusVoid:
		return true
	}

	return false
}

// Terminal reports whether no further transition is allowed from the status.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusVoid
}

// Transaction holds an income, expense or transfer record and its approval state.
//
// BalanceBefore and BalanceAfter are snapshots of the source account taken at final approval.
type Transaction struct {
	ID            int64           `json:"id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Status        Status          `json:"status"`
	Description   string          `json:"description"`
	Evidence      string          `json:"evidence,omitempty"`
	ReferenceID   string          `json:"reference_id"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedBy     string          `json:"created_by"`
	ApprovedBy    *string         `json:"approved_by,omitempty"`
	AccountID     int64           `json:"account_id"`
	ToAccountID   *int64          `json:"to_account_id,omitempty"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateTransactionParams is the input data to create a transaction.
//
// ReferenceID and Status are optional: an empty ReferenceID is generated and an empty
// Status means pending.
type CreateTransactionParams struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Evidence    string          `json:"evidence"`
	ReferenceID string          `json:"reference_id"`
	AccountID   int64           `json:"account_id"`
	ToAccountID *int64          `json:"to_account_id"`
	CategoryID  *int64          `json:"category_id"`
	Status      Status          `json:"status"`
}

// Validate checks the data shape of the params.
func (p CreateTransactionParams) Validate() error {
	return validateFields(p.Date, p.Amount, p.Type, p.AccountID, p.ToAccountID, p.Status)
}

// UpdateTransactionParams is the input data to replace the editable fields of a transaction.
//
// An empty Status keeps the current status.
type UpdateTransactionParams struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Evidence    string          `json:"evidence"`
	AccountID   int64           `json:"account_id"`
	ToAccountID *int64          `json:"to_account_id"`
	CategoryID  *int64          `json:"category_id"`
	Status      Status          `json:"status"`
}

// Validate checks the data shape of the params.
func (p UpdateTransactionParams) Validate() error {
	return validateFields(p.Date, p.Amount, p.Type, p.AccountID, p.ToAccountID, p.Status)
}

// Apply replaces the editable fields of t and resets its balance snapshots.
func (p UpdateTransactionParams) Apply(t Transaction, status Status) Transaction {
	t.Date = p.Date
	t.Amount = p.Amount
	t.Type = p.Type
	t.Description = p.Description
	t.Evidence = p.Evidence
	t.AccountID = p.AccountID
	t.ToAccountID = p.ToAccountID
	t.CategoryID = p.CategoryID
	t.Status = status
	t.BalanceBefore = decimal.Zero
	t.BalanceAfter = decimal.Zero

	return t
}

func validateFields(date time.Time, amount decimal.Decimal, typ TransactionType, accountID int64, toAccountID *int64, status Status) error {
	if date.IsZero() {
		return ErrMissingDate
	}

	if err := moneypkg.CheckAmount(amount); err != nil {
		return ErrInvalidAmount
	}

	if !typ.Valid() {
		return ErrInvalidType
	}

	if accountID <= 0 {
		return ErrMissingAccount
	}

	if typ == TypeTransfer {
		if toAccountID == nil || *toAccountID <= 0 || *toAccountID == accountID {
			return ErrTransferTarget
		}
	} else if toAccountID != nil {
		return ErrUnexpectedTarget
	}

	if status != "" && !status.Valid() {
		return ErrInvalidStatus
	}

	return nil
}

// ListTransactionsParams holds the optional filters of a transaction listing.
//
// Zero values mean "no filter". DateFrom and DateTo are inclusive.
type ListTransactionsParams struct {
	CreatedBy  string          `json:"created_by"`
	DateFrom   *time.Time      `json:"date_from"`
	DateTo     *time.Time      `json:"date_to"`
	AccountID  *int64          `json:"account_id"`
	CategoryID *int64          `json:"category_id"`
	Type       TransactionType `json:"type"`
	Status     Status          `json:"status"`
	Limit      int32           `json:"limit"`
	Offset     int32           `json:"offset"`
}

// Validate checks the filter values.
func (p ListTransactionsParams) Validate() error {
	if p.Type != "" && !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Status != "" && !p.Status.Valid() {
		return ErrInvalidStatus
	}

	if p.DateFrom != nil && p.DateTo != nil && p.DateFrom.After(*p.DateTo) {
		return fmt.Errorf("%w: date_from is after date_to", errorspkg.ErrValidation)
	}

	if p.Limit <= 0 || p.Offset < 0 {
		return fmt.Errorf("%w: invalid page", errorspkg.ErrValidation)
	}

	return nil
}

// TransactionResult is the outcome of a state-changing engine operation.
//
// Warning is set when the operation committed but its audit entry could not be recorded.
// RestoredBalance is set by void and holds the source account balance after reversal.
type TransactionResult struct {
	Transaction     Transaction      `json:"transaction"`
	RestoredBalance *decimal.Decimal `json:"restored_balance,omitempty"`
	Warning         string           `json:"warning,omitempty"`
}
