package validator

import (
	"beautify/pkg/logger"
	"beautify/pkg/model"
	"beautify/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type PaymentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPaymentValidator(log *logger.Logger) *PaymentValidator {
	return &PaymentValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *PaymentValidator) ValidateIntent(req *model.PaymentIntentRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *PaymentValidator) ValidateConfirmation(c *model.PaymentConfirmation) error {
	return validation.Struct(v.validate, c)
}
