// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Warning               string `json:"warning,omitempty"`
	Error                 string `json:"error,omitempty"`
	Kind                  string `json:"kind,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{
		Error: err.Error(),
		Kind:  errorspkg.Kind(err),
	}
}

// GetErrorMsg returns a human readable message for the failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf(" must be one of [%s]", fe.Param())
	case "email":
		return " must be a valid email"
	case "alphanum":
		return " must contain letters and digits only"
	case "amount":
		return " must be a positive amount with at most 2 fraction digits"
	case "role":
		return " is not a known role"
	case "txtype":
		return " must be one of [income expense transfer]"
	case "txstatus":
		return " is not a known status"
	case "acctype":
		return " must be one of [cash bank savings current]"
	case "balance":
		return " must be a non-negative amount with at most 2 fraction digits"
	case "datetime":
		return fmt.Sprintf(" must be a date in %s format", fe.Param())
	case "nefield":
		return fmt.Sprintf(" must differ from %s", fe.Param())
	case "url":
		return " must be a valid URL"
	}

	return " is invalid"
}

// ValidationError builds the response for the first failed field of ve.
func ValidationError(ve validator.ValidationErrors) Response {
	field := ve[0]

	return Response{
		Error: field.Field() + GetErrorMsg(field),
		Kind:  errorspkg.KindValidation,
	}
}

// BindError builds the response for a failed request binding.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(ve)
	}

	return Response{
		Error: err.Error(),
		Kind:  errorspkg.KindValidation,
	}
}

// StatusCode maps the kind of err to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errorspkg.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errorspkg.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errorspkg.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errorspkg.ErrInvalidTransition), errors.Is(err, errorspkg.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errorspkg.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
