// Package errorspkg provides common app errors.
//
// Every error returned across a layer boundary wraps exactly one of the kinds below,
// so callers can branch with errors.Is and report a stable kind name.
package errorspkg

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal indicates internal server error or a storage failure.
	ErrInternal = errors.New("internal")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation")
	// ErrNotFound indicates that a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied indicates that the actor's role is not allowed to perform the action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidTransition indicates a structurally impossible status change.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInsufficientFunds indicates that a balance would go negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict indicates a conflicting concurrent or duplicate write.
	ErrConflict = errors.New("conflict")
	// ErrBusy indicates lock contention or a lock-wait timeout.
	ErrBusy = fmt.Errorf("%w: resource busy, retry later", ErrConflict)
)

// Kind names as reported to callers.
const (
	KindInternal          = "storage_error"
	KindValidation        = "validation_error"
	KindNotFound          = "not_found"
	KindPermissionDenied  = "permission_denied"
	KindInvalidTransition = "invalid_transition"
	KindInsufficientFunds = "insufficient_funds"
	KindConflict          = "conflict"
	KindBusy              = "busy"
)

// Kind returns the stable kind name of err. Unknown errors are reported as storage errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrBusy):
		return KindBusy
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}
