package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Decimal2dp reports whether d is a positive amount with at most two
// fractional digits. Amount precision is rejected at the boundary, before
// anything reaches the ledger engine.
func Decimal2dp(d decimal.Decimal) bool {
	return d.IsPositive() && d.Exponent() >= -2
}

// RegisterCustomValidations attaches the ledger's custom binding validators
// to the given validator engine. Must be called once at startup against
// gin's binding validator.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("decimal2dp", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return Decimal2dp(d)
	})
}
