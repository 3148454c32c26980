// Package tokenpkg creates and verifies access and refresh tokens.
package tokenpkg

import (
	"fmt"
	"time"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username, role and duration.
	CreateToken(username, role string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// Supported token formats.
const (
	FormatPaseto = "paseto"
	FormatJWT    = "jwt"
)

// New returns the Maker for format keyed with key.
func New(format, key string) (Maker, error) {
	switch format {
	case FormatPaseto:
		return NewPasetoMaker(key)
	case FormatJWT:
		return NewJWTMaker(key)
	}

	return nil, fmt.Errorf("unknown token format %q", format)
}
