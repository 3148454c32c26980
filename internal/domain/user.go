package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
)

var (
	// ErrUsernameAlreadyExists indicates the the user with the given username already exists.
	ErrUsernameAlreadyExists = fmt.Errorf("%w: username already exists", errorspkg.ErrConflict)
	// ErrEmailALreadyExists indicates the the user with the given email already exists.
	ErrEmailALreadyExists = fmt.Errorf("%w: email already exists", errorspkg.ErrConflict)
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = fmt.Errorf("%w: user not found", errorspkg.ErrNotFound)
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = fmt.Errorf("%w: wrong password", errorspkg.ErrPermissionDenied)
)

// User holds user data.
type User struct {
	Username          string    `json:"username"`
	HashedPassword    string    `json:"hashed_password"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	PasswordChangedAt time.Time `json:"password_changed_at,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
}

// UserWihtoutPassword is User data excluding password data.
type UserWihtoutPassword struct {
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
