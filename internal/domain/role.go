package domain

import (
	"fmt"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
)

// ErrInvalidRole indicates an unknown role.
var ErrInvalidRole = fmt.Errorf("%w: invalid role", errorspkg.ErrValidation)

// Role is the closed set of user roles.
type Role string

// Known roles.
//
// RoleFinance is the first-tier approver and RoleAdmin the second-tier approver.
const (
	RoleStaff   Role = "staff"
	RoleFinance Role = "finance"
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
)

// ParseRole converts s into a known Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}

	return r, nil
}

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleFinance, RoleAdmin, RoleAuditor:
		return true
	}

	return false
}

// SeesAll reports whether the role may read transactions of every user.
func (r Role) SeesAll() bool {
	switch r {
	case RoleFinance, RoleAdmin, RoleAuditor:
		return true
	case RoleStaff:
		return false
	}

	return false
}

// CanWrite reports whether the role may create or change transactions.
func (r Role) CanWrite() bool {
	switch r {
	case RoleStaff, RoleFinance, RoleAdmin:
		return true
	case RoleAuditor:
		return false
	}

	return false
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	Username string
	Role     Role
}
