package validation

import (
	"github.com/go-playground/validator/v10"

	"delivery-system/pkg/constants"
)

// registerRules регистрирует кастомные правила предметной области.
func registerRules(v *validator.Validate) error {
	// delivery_status: значение обязано входить в фиксированный набор
	// из десяти статусов доставки.
	if err := v.RegisterValidation("delivery_status", func(fl validator.FieldLevel) bool {
		return constants.IsDeliveryStatus(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
