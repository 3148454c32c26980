package transactiondelivery

import (
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidType validates the transaction type.
var ValidType validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return domain.TransactionType(s).Valid()
	}

	return false
}

// ValidStatus validates the transaction status.
var ValidStatus validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return domain.Status(s).Valid()
	}

	return false
}
