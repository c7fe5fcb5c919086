package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cashflow-router/internal/service/allocation"
)

// RegisterCustomValidators wires the loantype binding tag into gin's validator.
// Valid values are P for payday or E<months> for EMI loans.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		_, err := allocation.TenureDays(fl.Field().String())
		return err == nil
	})
}
