package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestApprovalPostings(t *testing.T) {
	t.Parallel()

	to := int64(2)
	amount := decimal.RequireFromString("100.50")

	testCases := []struct {
		name string
		tx   Transaction
		want []Posting
	}{
		{
			name: "Income",
			tx:   Transaction{Type: TypeIncome, AccountID: 1, Amount: amount},
			want: []Posting{{AccountID: 1, Amount: amount}},
		},
		{
			name: "Expense",
			tx:   Transaction{Type: TypeExpense, AccountID: 1, Amount: amount},
			want: []Posting{{AccountID: 1, Amount: amount.Neg()}},
		},
		{
			name: "Transfer",
			tx:   Transaction{Type: TypeTransfer, AccountID: 1, ToAccountID: &to, Amount: amount},
			want: []Posting{{AccountID: 1, Amount: amount.Neg()}, {AccountID: 2, Amount: amount}},
		},
		{
			name: "TransferWithoutDestination",
			tx:   Transaction{Type: TypeTransfer, AccountID: 1, Amount: amount},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ApprovalPostings(tc.tx)
			if diff := cmp.Diff(tc.want, got, decimalEqual); diff != "" {
				t.Errorf("ApprovalPostings() mismatch (-want +got):\n%s", diff)
			}

			reversed := VoidPostings(tc.tx)
			require.Len(t, reversed, len(got))

			for j := range got {
				require.True(t, got[j].Amount.Add(reversed[j].Amount).IsZero())
			}
		})
	}
}

func TestLockOrder(t *testing.T) {
	t.Parallel()

	postings := []Posting{
		{AccountID: 7, Amount: decimal.NewFromInt(-1)},
		{AccountID: 3, Amount: decimal.NewFromInt(1)},
		{AccountID: 7, Amount: decimal.NewFromInt(1)},
	}

	require.Equal(t, []int64{3, 7}, LockOrder(postings))
}

func TestApply(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		balance string
		delta   string
		want    string
		wantErr error
	}{
		{name: "Credit", balance: "10.00", delta: "5.25", want: "15.25"},
		{name: "DebitToZero", balance: "10.00", delta: "-10.00", want: "0"},
		{name: "Overdraw", balance: "10.00", delta: "-10.01", wantErr: ErrInsufficientFunds},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			balance := decimal.RequireFromString(tc.balance)

			got, err := Apply(balance, decimal.RequireFromString(tc.delta))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.True(t, got.Equal(balance))
				return
			}

			require.NoError(t, err)
			require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}
