package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry holds one balance change of an account caused by a transaction.
type Entry struct {
	ID            int64           `json:"id"`
	AccountID     int64           `json:"account_id"`
	TransactionID int64           `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"` // can be negative or positive
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateEntryParams is the input data to append an entry.
type CreateEntryParams struct {
	AccountID     int64
	TransactionID int64
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
}
