package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prodtrack/backend/internal/application/inventory"
	"github.com/prodtrack/backend/internal/domain/production"
	"github.com/prodtrack/backend/internal/domain/scan"
)

// RegisterCustomValidators installs the domain-specific binding validators
// on gin's validator engine. Must be called once at startup, before any
// request binding happens.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("stockkind", validateStockKind); err != nil {
		return err
	}
	if err := v.RegisterValidation("orderstatus", validateOrderStatus); err != nil {
		return err
	}
	return v.RegisterValidation("scanaction", validateScanAction)
}

func validateStockKind(fl validator.FieldLevel) bool {
	return inventory.StockAdjustmentKind(fl.Field().String()).IsValid()
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return production.OrderStatus(fl.Field().String()).IsValid()
}

func validateScanAction(fl validator.FieldLevel) bool {
	return scan.ActionType(fl.Field().String()).IsValid()
}
