package validator

import (
	"beautify/pkg/logger"
	"beautify/pkg/model"
	"beautify/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BarberValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBarberValidator(log *logger.Logger) *BarberValidator {
	return &BarberValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *BarberValidator) Validate(barber *model.Barber) error {
	return validation.Struct(v.validate, barber)
}
