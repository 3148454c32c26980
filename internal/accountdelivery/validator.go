package accountdelivery

import (
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/moneypkg"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.AccountType(t).Valid()
	}

	return false
}

// ValidBalance validates a non-negative opening balance with at most 2 fraction digits.
var ValidBalance validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return !d.IsNegative() && d.Equal(d.Truncate(moneypkg.Scale))
}
