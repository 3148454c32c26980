package domain

import (
	"fmt"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
)

var (
	// ErrRoleNotAllowed indicates that the actor's role may not perform the action.
	ErrRoleNotAllowed = fmt.Errorf("%w: role is not allowed to perform this action", errorspkg.ErrPermissionDenied)
	// ErrFirstTierRequired indicates that a pending transaction must be approved by finance first.
	ErrFirstTierRequired = fmt.Errorf("%w: pending transactions must be approved by finance first", errorspkg.ErrPermissionDenied)
	// ErrNotOwner indicates that the transaction belongs to another user.
	ErrNotOwner = fmt.Errorf("%w: transaction belongs to another user", errorspkg.ErrPermissionDenied)

	// ErrTransactionFinal indicates that the transaction is rejected or void.
	ErrTransactionFinal = fmt.Errorf("%w: transaction is final", errorspkg.ErrInvalidTransition)
	// ErrAlreadyApproved indicates that the transaction is approved and can only be voided.
	ErrAlreadyApproved = fmt.Errorf("%w: transaction is approved, it can only be voided", errorspkg.ErrInvalidTransition)
	// ErrAwaitingSecondTier indicates that finance already approved the transaction.
	ErrAwaitingSecondTier = fmt.Errorf("%w: transaction is waiting for admin approval", errorspkg.ErrInvalidTransition)
	// ErrNotApproved indicates a void of a transaction that is not approved.
	ErrNotApproved = fmt.Errorf("%w: only approved transactions can be voided", errorspkg.ErrInvalidTransition)
	// ErrStatusNotSettable indicates a status that cannot be set by create or update.
	ErrStatusNotSettable = fmt.Errorf("%w: status can only change through approve, reject or void", errorspkg.ErrInvalidTransition)
)

// InitialStatus returns the status a new transaction is created with.
//
// Everybody creates pending transactions, admins may also create approved ones.
func InitialStatus(actor Actor, requested Status) (Status, error) {
	if !actor.Role.CanWrite() {
		return "", ErrRoleNotAllowed
	}

	switch requested {
	case "", StatusPending:
		return StatusPending, nil
	case StatusApproved:
		if actor.Role == RoleAdmin {
			return StatusApproved, nil
		}

		return "", ErrRoleNotAllowed
	case StatusWaitingApprovalA, StatusRejected, StatusVoid:
		return "", ErrStatusNotSettable
	}

	return "", ErrInvalidStatus
}

// NextOnApprove returns the status t moves to when actor approves it.
func NextOnApprove(actor Actor, t Transaction) (Status, error) {
	switch t.Status {
	case StatusApproved:
		return "", ErrAlreadyApproved
	case StatusRejected, StatusVoid:
		return "", ErrTransactionFinal
	case StatusPending:
		switch actor.Role {
		case RoleFinance:
			if t.Type == TypeIncome {
				return StatusApproved, nil
			}

			return StatusWaitingApprovalA, nil
		case RoleAdmin:
			return "", ErrFirstTierRequired
		case RoleStaff, RoleAuditor:
			return "", ErrRoleNotAllowed
		}
	case StatusWaitingApprovalA:
		switch actor.Role {
		case RoleAdmin:
			return StatusApproved, nil
		case RoleFinance:
			return "", ErrAwaitingSecondTier
		case RoleStaff, RoleAuditor:
			return "", ErrRoleNotAllowed
		}
	}

	return "", ErrRoleNotAllowed
}

// NextOnReject returns the status t moves to when actor rejects it.
func NextOnReject(actor Actor, t Transaction) (Status, error) {
	switch t.Status {
	case StatusApproved:
		return "", ErrAlreadyApproved
	case StatusRejected, StatusVoid:
		return "", ErrTransactionFinal
	case StatusPending:
		switch actor.Role {
		case RoleFinance:
			return StatusRejected, nil
		case RoleAdmin:
			return "", ErrFirstTierRequired
		case RoleStaff, RoleAuditor:
			return "", ErrRoleNotAllowed
		}
	case StatusWaitingApprovalA:
		switch actor.Role {
		case RoleAdmin:
			return StatusRejected, nil
		case RoleFinance:
			return "", ErrAwaitingSecondTier
		case RoleStaff, RoleAuditor:
			return "", ErrRoleNotAllowed
		}
	}

	return "", ErrRoleNotAllowed
}

// CheckVoid checks that actor may void t.
func CheckVoid(actor Actor, t Transaction) error {
	switch t.Status {
	case StatusApproved:
	case StatusRejected, StatusVoid:
		return ErrTransactionFinal
	case StatusPending, StatusWaitingApprovalA:
		return ErrNotApproved
	default:
		return ErrNotApproved
	}

	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleStaff, RoleFinance, RoleAuditor:
		return ErrRoleNotAllowed
	}

	return ErrRoleNotAllowed
}

// NextOnUpdate returns the status t keeps or moves to when actor edits it.
//
// Owners without a privileged role may only edit their own pending transactions and the
// status is forced back to pending. Approvers may edit any open or rejected transaction and
// may rewind an open one to pending.
func NextOnUpdate(actor Actor, t Transaction, requested Status) (Status, error) {
	switch t.Status {
	case StatusApproved:
		return "", ErrAlreadyApproved
	case StatusVoid:
		return "", ErrTransactionFinal
	}

	switch actor.Role {
	case RoleStaff:
		if t.CreatedBy != actor.Username {
			return "", ErrNotOwner
		}

		if t.Status != StatusPending {
			return "", ErrRoleNotAllowed
		}

		if requested != "" && requested != StatusPending {
			return "", ErrStatusNotSettable
		}

		return StatusPending, nil
	case RoleFinance, RoleAdmin:
		if requested == "" || requested == t.Status {
			return t.Status, nil
		}

		if requested == StatusPending && !t.Status.Terminal() {
			return StatusPending, nil
		}

		if t.Status.Terminal() {
			return "", ErrTransactionFinal
		}

		return "", ErrStatusNotSettable
	case RoleAuditor:
		return "", ErrRoleNotAllowed
	}

	return "", ErrRoleNotAllowed
}

// CheckDelete checks that actor may delete t.
func CheckDelete(actor Actor, t Transaction) error {
	switch t.Status {
	case StatusApproved:
		return ErrAlreadyApproved
	case StatusVoid:
		return ErrTransactionFinal
	}

	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleStaff, RoleFinance:
		if t.CreatedBy != actor.Username {
			return ErrNotOwner
		}

		if t.Status != StatusPending {
			return ErrRoleNotAllowed
		}

		return nil
	case RoleAuditor:
		return ErrRoleNotAllowed
	}

	return ErrRoleNotAllowed
}

// CanView reports whether actor may read t.
func CanView(actor Actor, t Transaction) bool {
	return actor.Role.SeesAll() || t.CreatedBy == actor.Username
}
