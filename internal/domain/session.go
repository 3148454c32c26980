package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/google/uuid"
)

var (
	// ErrBlockedSession indicates that the session is blocked.
	ErrBlockedSession = fmt.Errorf("%w: blocked session", errorspkg.ErrPermissionDenied)
	// ErrMismatchedRefreshToken indicates mismatch between the given token and the session token.
	ErrMismatchedRefreshToken = fmt.Errorf("%w: mismatched session token", errorspkg.ErrPermissionDenied)
	// ErrInvalidUser indicates that the session belongs to another user.
	ErrInvalidUser = fmt.Errorf("%w: incorrect session user", errorspkg.ErrPermissionDenied)
	// ErrExpiredSession indicates that the session has expired.
	ErrExpiredSession = fmt.Errorf("%w: expired session", errorspkg.ErrPermissionDenied)
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = fmt.Errorf("%w: session not found", errorspkg.ErrNotFound)
)

// Session holds refresh session data of a user.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateSessionParams holds data needed for Session creation.
type CreateSessionParams struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
}
