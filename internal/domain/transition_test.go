package domain

import (
	"testing"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/stretchr/testify/require"
)

var (
	staff   = Actor{Username: "sam", Role: RoleStaff}
	finance = Actor{Username: "fiona", Role: RoleFinance}
	admin   = Actor{Username: "adam", Role: RoleAdmin}
	auditor = Actor{Username: "audrey", Role: RoleAuditor}
)

func txWith(status Status, typ TransactionType, createdBy string) Transaction {
	return Transaction{Status: status, Type: typ, CreatedBy: createdBy}
}

func TestInitialStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		actor     Actor
		requested Status
		want      Status
		wantErr   error
	}{
		{name: "StaffDefault", actor: staff, want: StatusPending},
		{name: "FinancePending", actor: finance, requested: StatusPending, want: StatusPending},
		{name: "AdminApproved", actor: admin, requested: StatusApproved, want: StatusApproved},
		{name: "FinanceApproved", actor: finance, requested: StatusApproved, wantErr: ErrRoleNotAllowed},
		{name: "StaffWaiting", actor: staff, requested: StatusWaitingApprovalA, wantErr: ErrStatusNotSettable},
		{name: "AdminVoid", actor: admin, requested: StatusVoid, wantErr: ErrStatusNotSettable},
		{name: "Auditor", actor: auditor, wantErr: ErrRoleNotAllowed},
		{name: "Unknown", actor: admin, requested: "bogus", wantErr: ErrInvalidStatus},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := InitialStatus(tc.actor, tc.requested)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNextOnApprove(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		actor    Actor
		tx       Transaction
		want     Status
		wantKind error
	}{
		{name: "FinanceIncome", actor: finance, tx: txWith(StatusPending, TypeIncome, "sam"), want: StatusApproved},
		{name: "FinanceExpense", actor: finance, tx: txWith(StatusPending, TypeExpense, "sam"), want: StatusWaitingApprovalA},
		{name: "FinanceTransfer", actor: finance, tx: txWith(StatusPending, TypeTransfer, "sam"), want: StatusWaitingApprovalA},
		{name: "AdminWaiting", actor: admin, tx: txWith(StatusWaitingApprovalA, TypeExpense, "sam"), want: StatusApproved},
		{name: "AdminPending", actor: admin, tx: txWith(StatusPending, TypeExpense, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "FinanceWaiting", actor: finance, tx: txWith(StatusWaitingApprovalA, TypeExpense, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "StaffPending", actor: staff, tx: txWith(StatusPending, TypeIncome, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "AuditorWaiting", actor: auditor, tx: txWith(StatusWaitingApprovalA, TypeIncome, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "Approved", actor: admin, tx: txWith(StatusApproved, TypeIncome, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "Rejected", actor: finance, tx: txWith(StatusRejected, TypeIncome, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "Void", actor: admin, tx: txWith(StatusVoid, TypeIncome, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "StateBeforeRole", actor: staff, tx: txWith(StatusVoid, TypeIncome, "sam"), wantKind: errorspkg.ErrInvalidTransition},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NextOnApprove(tc.actor, tc.tx)
			if tc.wantKind != nil {
				require.ErrorIs(t, err, tc.wantKind)
				require.Empty(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNextOnReject(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		actor    Actor
		tx       Transaction
		want     Status
		wantKind error
	}{
		{name: "FinancePending", actor: finance, tx: txWith(StatusPending, TypeExpense, "sam"), want: StatusRejected},
		{name: "AdminWaiting", actor: admin, tx: txWith(StatusWaitingApprovalA, TypeTransfer, "sam"), want: StatusRejected},
		{name: "AdminPending", actor: admin, tx: txWith(StatusPending, TypeExpense, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "FinanceWaiting", actor: finance, tx: txWith(StatusWaitingApprovalA, TypeExpense, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "StaffPending", actor: staff, tx: txWith(StatusPending, TypeExpense, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "Approved", actor: admin, tx: txWith(StatusApproved, TypeExpense, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "Rejected", actor: finance, tx: txWith(StatusRejected, TypeExpense, "sam"), wantKind: errorspkg.ErrInvalidTransition},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NextOnReject(tc.actor, tc.tx)
			if tc.wantKind != nil {
				require.ErrorIs(t, err, tc.wantKind)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCheckVoid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		actor    Actor
		status   Status
		wantKind error
	}{
		{name: "AdminApproved", actor: admin, status: StatusApproved},
		{name: "FinanceApproved", actor: finance, status: StatusApproved, wantKind: errorspkg.ErrPermissionDenied},
		{name: "AdminPending", actor: admin, status: StatusPending, wantKind: errorspkg.ErrInvalidTransition},
		{name: "AdminWaiting", actor: admin, status: StatusWaitingApprovalA, wantKind: errorspkg.ErrInvalidTransition},
		{name: "AdminRejected", actor: admin, status: StatusRejected, wantKind: errorspkg.ErrInvalidTransition},
		{name: "AdminVoid", actor: admin, status: StatusVoid, wantKind: errorspkg.ErrInvalidTransition},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := CheckVoid(tc.actor, txWith(tc.status, TypeExpense, "sam"))
			if tc.wantKind != nil {
				require.ErrorIs(t, err, tc.wantKind)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestNextOnUpdate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		actor     Actor
		tx        Transaction
		requested Status
		want      Status
		wantKind  error
	}{
		{name: "StaffOwnPending", actor: staff, tx: txWith(StatusPending, TypeExpense, "sam"), want: StatusPending},
		{name: "StaffOtherPending", actor: staff, tx: txWith(StatusPending, TypeExpense, "bob"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "StaffOwnWaiting", actor: staff, tx: txWith(StatusWaitingApprovalA, TypeExpense, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "StaffRequestsApproved", actor: staff, tx: txWith(StatusPending, TypeExpense, "sam"), requested: StatusApproved, wantKind: errorspkg.ErrInvalidTransition},
		{name: "FinanceKeepsWaiting", actor: finance, tx: txWith(StatusWaitingApprovalA, TypeExpense, "sam"), want: StatusWaitingApprovalA},
		{name: "FinanceRewindsWaiting", actor: finance, tx: txWith(StatusWaitingApprovalA, TypeExpense, "sam"), requested: StatusPending, want: StatusPending},
		{name: "AdminKeepsRejected", actor: admin, tx: txWith(StatusRejected, TypeExpense, "sam"), want: StatusRejected},
		{name: "AdminReopensRejected", actor: admin, tx: txWith(StatusRejected, TypeExpense, "sam"), requested: StatusPending, wantKind: errorspkg.ErrInvalidTransition},
		{name: "AdminSetsApproved", actor: admin, tx: txWith(StatusPending, TypeExpense, "sam"), requested: StatusApproved, wantKind: errorspkg.ErrInvalidTransition},
		{name: "Approved", actor: admin, tx: txWith(StatusApproved, TypeExpense, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "Void", actor: admin, tx: txWith(StatusVoid, TypeExpense, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "Auditor", actor: auditor, tx: txWith(StatusPending, TypeExpense, "sam"), wantKind: errorspkg.ErrPermissionDenied},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NextOnUpdate(tc.actor, tc.tx, tc.requested)
			if tc.wantKind != nil {
				require.ErrorIs(t, err, tc.wantKind)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCheckDelete(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		actor    Actor
		tx       Transaction
		wantKind error
	}{
		{name: "StaffOwnPending", actor: staff, tx: txWith(StatusPending, TypeIncome, "sam")},
		{name: "StaffOtherPending", actor: staff, tx: txWith(StatusPending, TypeIncome, "bob"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "StaffOwnRejected", actor: staff, tx: txWith(StatusRejected, TypeIncome, "sam"), wantKind: errorspkg.ErrPermissionDenied},
		{name: "AdminWaiting", actor: admin, tx: txWith(StatusWaitingApprovalA, TypeIncome, "sam")},
		{name: "AdminRejected", actor: admin, tx: txWith(StatusRejected, TypeIncome, "sam")},
		{name: "AdminApproved", actor: admin, tx: txWith(StatusApproved, TypeIncome, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "AdminVoid", actor: admin, tx: txWith(StatusVoid, TypeIncome, "sam"), wantKind: errorspkg.ErrInvalidTransition},
		{name: "Auditor", actor: auditor, tx: txWith(StatusPending, TypeIncome, "audrey"), wantKind: errorspkg.ErrPermissionDenied},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := CheckDelete(tc.actor, tc.tx)
			if tc.wantKind != nil {
				require.ErrorIs(t, err, tc.wantKind)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestCanView(t *testing.T) {
	t.Parallel()

	tx := txWith(StatusPending, TypeIncome, "bob")

	require.False(t, CanView(staff, tx))
	require.True(t, CanView(Actor{Username: "bob", Role: RoleStaff}, tx))
	require.True(t, CanView(finance, tx))
	require.True(t, CanView(admin, tx))
	require.True(t, CanView(auditor, tx))
}
