package dbpkg

import (
	"errors"

	"github.com/lib/pq"
)

// IsBusy reports whether err is caused by lock contention: a lock-wait timeout,
// a detected deadlock, a serialization failure or a cancelled statement.
func IsBusy(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch pqErr.Code.Name() {
	case "lock_not_available", "deadlock_detected", "serialization_failure", "query_canceled":
		return true
	}

	return false
}

// Violation returns the error code name and constraint of a Postgres integrity violation.
func Violation(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", "", false
	}

	return pqErr.Code.Name(), pqErr.Constraint, true
}
