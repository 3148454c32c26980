package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Posting is a signed balance change of one account.
type Posting struct {
	AccountID int64
	Amount    decimal.Decimal
}

// ApprovalPostings returns the balance changes applied when t becomes approved.
//
// Income credits the account, expense debits it and a transfer moves the amount from
// the account to the destination account.
func ApprovalPostings(t Transaction) []Posting {
	switch t.Type {
	case TypeIncome:
		return []Posting{{AccountID: t.AccountID, Amount: t.Amount}}
	case TypeExpense:
		return []Posting{{AccountID: t.AccountID, Amount: t.Amount.Neg()}}
	case TypeTransfer:
		if t.ToAccountID == nil {
			return nil
		}

		return []Posting{
			{AccountID: t.AccountID, Amount: t.Amount.Neg()},
			{AccountID: *t.ToAccountID, Amount: t.Amount},
		}
	}

	return nil
}

// VoidPostings returns the balance changes that reverse ApprovalPostings.
func VoidPostings(t Transaction) []Posting {
	postings := ApprovalPostings(t)
	for i := range postings {
		postings[i].Amount = postings[i].Amount.Neg()
	}

	return postings
}

// LockOrder returns the distinct account ids of postings in ascending order.
func LockOrder(postings []Posting) []int64 {
	ids := make([]int64, 0, len(postings))
	seen := make(map[int64]bool, len(postings))

	for _, p := range postings {
		if seen[p.AccountID] {
			continue
		}

		seen[p.AccountID] = true
		ids = append(ids, p.AccountID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Apply returns balance changed by delta or ErrInsufficientFunds if the result is negative.
func Apply(balance, delta decimal.Decimal) (decimal.Decimal, error) {
	result := balance.Add(delta)
	if result.IsNegative() {
		return balance, ErrInsufficientFunds
	}

	return result, nil
}
