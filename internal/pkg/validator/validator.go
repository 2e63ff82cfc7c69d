package validator

import (
	"fmt"

	validatorlib "github.com/go-playground/validator/v10"

	"minemarket/internal/domain"
)

var validate *validatorlib.Validate

func init() {
	validate = validatorlib.New()

	// Domain enums usable straight from dto tags.
	_ = validate.RegisterValidation("user_role", func(fl validatorlib.FieldLevel) bool {
		return domain.ValidRole(domain.UserRole(fl.Field().String()))
	})
	_ = validate.RegisterValidation("mine_status", func(fl validatorlib.FieldLevel) bool {
		return domain.ValidMineStatus(domain.MineStatus(fl.Field().String()))
	})
}

// Validate returns a field->message map, nil when the struct is valid.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validatorlib.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = message(fe)
	}
	return details
}

func message(fe validatorlib.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "user_role":
		return "Unknown role"
	case "mine_status":
		return "Unknown mine status"
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}
