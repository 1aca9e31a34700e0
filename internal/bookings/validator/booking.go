package validator

import (
	"beautify/pkg/logger"
	"beautify/pkg/model"
	"beautify/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	return validation.Struct(v.validate, booking)
}

func (v *BookingValidator) ValidateReview(update *model.ReviewUpdate) error {
	return validation.Struct(v.validate, update)
}

func (v *BookingValidator) ValidateTransactionID(transactionID string) error {
	if err := v.validate.Var(transactionID, "required,max=255"); err != nil {
		return validation.ValidationErrors{{Field: "transactionId", Message: "transactionId is required"}}
	}
	return nil
}
