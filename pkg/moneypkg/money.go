// Package moneypkg provides fixed-point money helpers with 2 fraction digits.
package moneypkg

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits kept for amounts and balances.
const Scale = 2

var (
	// ErrMalformedAmount indicates that the amount is not a decimal number.
	ErrMalformedAmount = errors.New("malformed amount")
	// ErrNonPositiveAmount indicates that the amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrTooPrecise indicates that the amount has more than 2 fraction digits.
	ErrTooPrecise = errors.New("amount must have at most 2 fraction digits")
)

// ParseAmount parses a strictly positive amount with at most 2 fraction digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}

	return d, CheckAmount(d)
}

// CheckAmount checks that d is strictly positive and has at most 2 fraction digits.
func CheckAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrNonPositiveAmount
	}

	if !d.Equal(d.Truncate(Scale)) {
		return ErrTooPrecise
	}

	return nil
}

// Format renders d with exactly 2 fraction digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// ValidAmount validates whether the field holds a positive amount with at most 2 fraction digits.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case string:
		_, err := ParseAmount(v)
		return err == nil
	case decimal.Decimal:
		return CheckAmount(v) == nil
	}

	return false
}
