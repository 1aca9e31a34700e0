package validator

import (
	"fmt"
	"strings"

	"beautify/pkg/logger"
	"beautify/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const maxProfileFields = 50

// reservedProfileKeys are owned by the store and dropped from profiles.
var reservedProfileKeys = []string{"_id", "email", "role", "created_at", "updated_at"}

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *UserValidator) ValidateEmail(email string) error {
	if err := v.validate.Var(email, "required,email,max=254"); err != nil {
		return validation.ValidationErrors{{Field: "email", Message: "email must be a valid email address"}}
	}
	return nil
}

// ValidateProfile rejects keys the store cannot hold as field names.
func (v *UserValidator) ValidateProfile(profile map[string]any) error {
	if len(profile) > maxProfileFields {
		return validation.ValidationErrors{{
			Field:   "profile",
			Message: fmt.Sprintf("profile must have at most %d fields", maxProfileFields),
		}}
	}

	var errs validation.ValidationErrors
	for key := range profile {
		if key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
			errs = append(errs, validation.ValidationError{
				Field:   key,
				Message: "profile field names cannot be empty, start with '$' or contain '.'",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StripReserved removes store-owned keys and reports which were dropped.
func StripReserved(profile map[string]any) (map[string]any, []string) {
	var dropped []string
	for _, key := range reservedProfileKeys {
		if _, ok := profile[key]; ok {
			delete(profile, key)
			dropped = append(dropped, key)
		}
	}
	return profile, dropped
}
